package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// MemoryUserRepository is a mutex-guarded in-memory UserRepository,
// used by tests and by the console app when no data directory is set.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) Add(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return utils.ErrUsernameTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("update user %s: %w", user.Username, utils.ErrUserNotFound)
	}
	r.users[user.ID] = *user
	return nil
}
