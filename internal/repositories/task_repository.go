package repositories

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/storage"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// TaskRepository manages task records. Tasks belong to exactly one
// user; the service layer enforces that callers only reach their own.
type TaskRepository interface {
	// GetByUserID returns all tasks owned by the given user.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Task, error)

	// GetByID fetches a task by ID. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	Add(ctx context.Context, task *models.Task) error

	// Update replaces an existing task. Fails with ErrTaskNotFound.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task. Fails with ErrTaskNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileTaskRepository persists all tasks as one JSON document, same
// load-modify-save discipline as FileUserRepository.
type FileTaskRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileTaskRepository(dataDir string) *FileTaskRepository {
	return &FileTaskRepository{path: filepath.Join(dataDir, "tasks.json")}
}

func (r *FileTaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Task
	for _, t := range r.loadAll() {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *FileTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.loadAll()
	for i := range tasks {
		if tasks[i].ID == id {
			t := tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *FileTaskRepository) Add(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := append(r.loadAll(), *task)
	return r.saveAll(tasks)
}

func (r *FileTaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.loadAll()
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = *task
			return r.saveAll(tasks)
		}
	}
	return utils.ErrTaskNotFound
}

func (r *FileTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.loadAll()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.saveAll(tasks)
		}
	}
	return utils.ErrTaskNotFound
}

func (r *FileTaskRepository) loadAll() []models.Task {
	tasks, err := storage.Load[[]models.Task](r.path)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to load tasks from %s; treating as empty", r.path)
		return nil
	}
	return tasks
}

func (r *FileTaskRepository) saveAll(tasks []models.Task) error {
	return storage.Save(r.path, tasks)
}
