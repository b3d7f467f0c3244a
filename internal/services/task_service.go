package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// TaskService exposes the per-user task operations. Every call takes
// the caller's session token, validates it and resolves the owning
// user; an invalid, expired or revoked token fails with ErrUnauthorized
// wrapping the specific token error.
type TaskService interface {
	Add(ctx context.Context, token string, task *models.Task) error
	Remove(ctx context.Context, token string, taskID uuid.UUID) error
	MarkCompleted(ctx context.Context, token string, taskID uuid.UUID) error
	List(ctx context.Context, token string) ([]models.Task, error)
	Search(ctx context.Context, token, keyword string) ([]models.Task, error)
	SortByDueDate(ctx context.Context, token string, ascending bool) ([]models.Task, error)
	FilterByCompletion(ctx context.Context, token string, completed bool) ([]models.Task, error)
}

type taskService struct {
	userRepo repositories.UserRepository
	taskRepo repositories.TaskRepository
	tokens   TokenService
}

func NewTaskService(userRepo repositories.UserRepository, taskRepo repositories.TaskRepository, tokens TokenService) TaskService {
	return &taskService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		tokens:   tokens,
	}
}

func (s *taskService) Add(ctx context.Context, token string, task *models.Task) error {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return err
	}

	if strings.TrimSpace(task.Title) == "" {
		return utils.ErrInvalidInput
	}

	utils.Logger.Infof("Add task: %s", task.ID)

	task.UserID = user.ID
	return s.taskRepo.Add(ctx, task)
}

func (s *taskService) Remove(ctx context.Context, token string, taskID uuid.UUID) error {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return err
	}

	utils.Logger.Infof("Remove task: %s", taskID)

	if err := s.ownedTask(ctx, user, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

func (s *taskService) MarkCompleted(ctx context.Context, token string, taskID uuid.UUID) error {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return err
	}

	utils.Logger.Infof("Mark task completed: %s", taskID)

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil || task.UserID != user.ID {
		return utils.ErrTaskNotFound
	}

	task.MarkCompleted()
	return s.taskRepo.Update(ctx, task)
}

func (s *taskService) List(ctx context.Context, token string) ([]models.Task, error) {
	user, err := s.userFromToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.GetByUserID(ctx, user.ID)
}

func (s *taskService) Search(ctx context.Context, token, keyword string) ([]models.Task, error) {
	tasks, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	var out []models.Task
	for _, t := range tasks {
		if t.Matches(keyword) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *taskService) SortByDueDate(ctx context.Context, token string, ascending bool) ([]models.Task, error) {
	tasks, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if ascending {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}
		return tasks[i].DueDate.After(tasks[j].DueDate)
	})
	return tasks, nil
}

func (s *taskService) FilterByCompletion(ctx context.Context, token string, completed bool) ([]models.Task, error) {
	tasks, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	var out []models.Task
	for _, t := range tasks {
		if t.IsCompleted == completed {
			out = append(out, t)
		}
	}
	return out, nil
}

// userFromToken validates the session token and loads its user. The
// token error is preserved inside ErrUnauthorized so callers can tell
// an expired session from a forged one.
func (s *taskService) userFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrUnauthorized, err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *taskService) ownedTask(ctx context.Context, user *models.User, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil || task.UserID != user.ID {
		return utils.ErrTaskNotFound
	}
	return nil
}
