package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Sl1me945/TaskManager/internal/dtos"
	"github.com/Sl1me945/TaskManager/internal/services"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

var authValidate = validator.New()

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Username and password are required", nil, err)
		return
	}

	if err := c.authService.SignUp(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, utils.ErrUsernameTaken):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "This username is already taken", nil)
		case errors.Is(err, utils.ErrInvalidInput), errors.Is(err, utils.ErrEmptyPassword):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Username and password are required", nil)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to sign up", nil, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Username and password are required", nil, err)
		return
	}

	token, err := c.authService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		// One generic rejection for both unknown user and wrong
		// password; anything else is a server fault.
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid username or password", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to sign in", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SignInResponse{Token: token})
}

// SignOut revokes the presented token. It accepts the token from the
// Authorization header or the body and always answers 204: revocation
// is advisory cleanup, not a gate.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerOrEmpty(r)
	if token == "" {
		var req dtos.SignOutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.Token
		}
	}

	c.authService.SignOut(r.Context(), token)
	w.WriteHeader(http.StatusNoContent)
}

func bearerOrEmpty(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
