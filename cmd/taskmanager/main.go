package main

import (
	"context"
	"crypto/rand"
	"errors"
	"os"

	"github.com/Sl1me945/TaskManager/internal/cli"
	"github.com/Sl1me945/TaskManager/internal/config"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/services"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

const appName = "taskmanager"

func main() {
	utils.InitLogger(appName)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		utils.Logger.Fatal("Failed to load config: ", err)
	}

	// The console app keeps sessions in-process, so an absent key is
	// replaced with an ephemeral one instead of refusing to start.
	// Tokens then die with the process, which is fine for a local CLI.
	// A key that is configured but too short is a misconfiguration and
	// stays fatal, same as the server.
	signingKey, err := cfg.SigningKey()
	if err != nil {
		if errors.Is(err, utils.ErrSecretTooShort) {
			utils.Logger.Fatal("Refusing to start: ", err)
		}
		utils.Logger.Warn("No JWT_SECRET_KEY configured; using an ephemeral signing key")
		signingKey = make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			utils.Logger.Fatal("Failed to generate signing key: ", err)
		}
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

	runner := cli.NewRunner(authService, taskService, os.Stdin, os.Stdout)
	if err := runner.Run(context.Background()); err != nil {
		utils.Logger.Fatal("Fatal error: ", err)
	}
}
