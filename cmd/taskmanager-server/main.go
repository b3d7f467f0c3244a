package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/Sl1me945/TaskManager/internal/config"
	"github.com/Sl1me945/TaskManager/internal/controllers"
	"github.com/Sl1me945/TaskManager/internal/middleware"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/services"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

const appName = "taskmanager-server"

func main() {
	utils.InitLogger(appName)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		utils.Logger.Fatal("Failed to load config: ", err)
	}
	utils.Logger.Debug("Config loaded: ", cfg)

	// A hosted instance never runs on a weak or ephemeral key.
	signingKey, err := cfg.SigningKey()
	if err != nil {
		utils.Logger.Fatal("Refusing to start: ", err)
	}

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewFileUserRepository(cfg.DataDir)
	taskRepo := repositories.NewFileTaskRepository(cfg.DataDir)
	revocationStore := repositories.NewRevocationStore()

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	tokenService, err := services.NewJWTService(
		signingKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenLifetime(), revocationStore,
	)
	if err != nil {
		utils.Logger.Fatal("Failed to create token service: ", err)
	}

	hasher := services.NewPasswordHasher()
	authService := services.NewAuthService(userRepo, hasher, tokenService)
	taskService := services.NewTaskService(userRepo, taskRepo, tokenService)
	revocationCleanup := services.NewRevocationCleanupService(revocationStore)

	//----------------------------------------------------------------------
	// Controllers and routes
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService)
	taskController := controllers.NewTaskController(taskService)
	healthController := controllers.NewHealthController()

	router := mux.NewRouter()
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	authRoutes := router.PathPrefix("/api/v1/auth").Subrouter()
	authRoutes.HandleFunc("/signup", authController.SignUp).Methods("POST")
	authRoutes.HandleFunc("/signin", authController.SignIn).Methods("POST")
	authRoutes.HandleFunc("/signout", authController.SignOut).Methods("POST")

	taskRoutes := router.PathPrefix("/api/v1/tasks").Subrouter()
	taskRoutes.Use(middleware.AuthMiddleware(tokenService))
	taskRoutes.HandleFunc("", taskController.List).Methods("GET")
	taskRoutes.HandleFunc("", taskController.Create).Methods("POST")
	taskRoutes.HandleFunc("/{id}", taskController.Delete).Methods("DELETE")
	taskRoutes.HandleFunc("/{id}/complete", taskController.Complete).Methods("POST")

	//----------------------------------------------------------------------
	// Scheduled revocation sweep
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("@hourly", func() {
		if e := revocationCleanup.Cleanup(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled revocation sweep failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule revocation sweep")
	}
	c.Start()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigin != "" {
		allowedOrigins = []string{cfg.AllowedOrigin}
	}
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", appName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server: ", err)
	}
}
