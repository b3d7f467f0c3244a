package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// MemoryTaskRepository is the in-memory TaskRepository counterpart to
// MemoryUserRepository.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]models.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[uuid.UUID]models.Task)}
}

func (r *MemoryTaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *MemoryTaskRepository) Add(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return utils.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return utils.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
