package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
)

type CreateTaskRequest struct {
	Kind        string    `json:"kind" validate:"required,oneof=simple work recurring"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Priority    int       `json:"priority" validate:"gte=0,lte=2"`

	// Variant-specific fields.
	ProjectName           string `json:"project_name" validate:"required_if=Kind work"`
	RepeatIntervalMinutes int    `json:"repeat_interval_minutes" validate:"required_if=Kind recurring,gte=0"`
}

// ToTask builds the domain task for the owning user.
func (r *CreateTaskRequest) ToTask(userID uuid.UUID) *models.Task {
	priority := models.Priority(r.Priority)
	switch models.TaskKind(r.Kind) {
	case models.TaskKindWork:
		return models.NewWorkTask(userID, r.Title, r.Description, r.DueDate, priority, r.ProjectName)
	case models.TaskKindRecurring:
		interval := time.Duration(r.RepeatIntervalMinutes) * time.Minute
		return models.NewRecurringTask(userID, r.Title, r.Description, r.DueDate, priority, interval)
	default:
		return models.NewSimpleTask(userID, r.Title, r.Description, r.DueDate, priority)
	}
}

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	Priority    int       `json:"priority"`

	ProjectName           string `json:"project_name,omitempty"`
	RepeatIntervalMinutes int    `json:"repeat_interval_minutes,omitempty"`
}

func NewTaskResponse(t models.Task) TaskResponse {
	return TaskResponse{
		ID:                    t.ID,
		Kind:                  string(t.Kind),
		Title:                 t.Title,
		Description:           t.Description,
		CreatedAt:             t.CreatedAt,
		DueDate:               t.DueDate,
		IsCompleted:           t.IsCompleted,
		Priority:              int(t.Priority),
		ProjectName:           t.ProjectName,
		RepeatIntervalMinutes: int(t.RepeatInterval / time.Minute),
	}
}

func NewTaskListResponse(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
