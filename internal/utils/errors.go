package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrTaskNotFound       = errors.New("task_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Token validation errors. Validate collapses every adversarial or
// edge input into one of these; callers branch with errors.Is.
var (
	ErrTokenMalformed = errors.New("token: malformed or signature mismatch")
	ErrTokenExpired   = errors.New("token: expired")
	ErrTokenRevoked   = errors.New("token: revoked")
)

// ErrSecretTooShort is fatal at startup, never per-request.
var ErrSecretTooShort = errors.New("signing key must be at least 32 bytes")
