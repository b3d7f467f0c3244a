package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// AuthService coordinates sign-up, sign-in and sign-out across the
// password hasher, the token service and the user repository.
type AuthService interface {
	// SignUp creates an account. Fails with ErrUsernameTaken if the
	// username exists and ErrInvalidInput on blank username/password.
	SignUp(ctx context.Context, username, password string) error

	// SignIn verifies credentials and returns a session token. A
	// missing user and a wrong password both fail with
	// ErrInvalidCredentials so callers cannot enumerate usernames.
	SignIn(ctx context.Context, username, password string) (string, error)

	// SignOut revokes the token. Blank input is a no-op.
	SignOut(ctx context.Context, token string)
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
}

func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *authService) SignUp(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return utils.ErrInvalidInput
	}

	utils.Logger.Infof("Sign up attempt for user: %s", username)

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("look up username: %w", err)
	}
	if existing != nil {
		return utils.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := s.userRepo.Add(ctx, models.NewUser(username, hash)); err != nil {
		return err
	}

	utils.Logger.Infof("Successful sign up for user: %s", username)
	return nil
}

func (s *authService) SignIn(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	utils.Logger.Infof("Sign in attempt for user: %s", username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("look up username: %w", err)
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, password) {
		return "", utils.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) SignOut(ctx context.Context, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	utils.Logger.Info("Sign out")
	s.tokens.Revoke(token)
}
