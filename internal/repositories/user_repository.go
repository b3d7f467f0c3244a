package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/storage"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// UserRepository is the interface used by the auth and task services to
// manage user accounts.
type UserRepository interface {
	// GetByUsername fetches a user by username. Returns nil if not found.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID fetches a user by ID. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Add stores a new user. Fails with ErrUsernameTaken if the
	// username already exists.
	Add(ctx context.Context, user *models.User) error

	// Update replaces an existing user record. Fails with
	// ErrUserNotFound if no record carries the user's ID.
	Update(ctx context.Context, user *models.User) error
}

// FileUserRepository persists users as one JSON document on disk.
// Every operation does a full load-modify-save under a lock; fine for a
// personal data set, not for a shared multi-process store.
type FileUserRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileUserRepository(dataDir string) *FileUserRepository {
	return &FileUserRepository{path: filepath.Join(dataDir, "users.json")}
}

func (r *FileUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadAll()
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *FileUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadAll()
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *FileUserRepository) Add(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadAll()
	for i := range users {
		if users[i].Username == user.Username {
			return utils.ErrUsernameTaken
		}
	}

	users = append(users, *user)
	return r.saveAll(users)
}

func (r *FileUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.loadAll()
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.saveAll(users)
		}
	}
	return fmt.Errorf("update user %s: %w", user.Username, utils.ErrUserNotFound)
}

// loadAll tolerates a missing or corrupt document so a damaged file
// degrades to an empty store instead of wedging every operation.
func (r *FileUserRepository) loadAll() []models.User {
	users, err := storage.Load[[]models.User](r.path)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to load users from %s; treating as empty", r.path)
		return nil
	}
	return users
}

func (r *FileUserRepository) saveAll(users []models.User) error {
	return storage.Save(r.path, users)
}
