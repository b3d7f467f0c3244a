package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskKind discriminates the task variants. Stored in the JSON document
// so the file repository can round-trip every kind through one struct.
type TaskKind string

const (
	TaskKindSimple    TaskKind = "simple"
	TaskKindWork      TaskKind = "work"
	TaskKindRecurring TaskKind = "recurring"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Task is a tagged variant: Kind selects which of the optional fields
// are meaningful. ProjectName is set for work tasks, RepeatInterval for
// recurring tasks; both are zero otherwise.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Kind        TaskKind  `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	Priority    Priority  `json:"priority"`

	ProjectName    string        `json:"project_name,omitempty"`
	RepeatInterval time.Duration `json:"repeat_interval,omitempty"`
}

func NewSimpleTask(userID uuid.UUID, title, description string, dueDate time.Time, priority Priority) *Task {
	return newTask(userID, TaskKindSimple, title, description, dueDate, priority)
}

func NewWorkTask(userID uuid.UUID, title, description string, dueDate time.Time, priority Priority, projectName string) *Task {
	t := newTask(userID, TaskKindWork, title, description, dueDate, priority)
	t.ProjectName = projectName
	return t
}

func NewRecurringTask(userID uuid.UUID, title, description string, dueDate time.Time, priority Priority, repeatInterval time.Duration) *Task {
	t := newTask(userID, TaskKindRecurring, title, description, dueDate, priority)
	t.RepeatInterval = repeatInterval
	return t
}

func newTask(userID uuid.UUID, kind TaskKind, title, description string, dueDate time.Time, priority Priority) *Task {
	return &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		DueDate:     dueDate,
		Priority:    priority,
	}
}

func (t *Task) MarkCompleted() {
	t.IsCompleted = true
}

// Matches reports whether the keyword occurs in the title or
// description, case-insensitively.
func (t *Task) Matches(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(t.Title), k) ||
		strings.Contains(strings.ToLower(t.Description), k)
}

func (t *Task) String() string {
	var sb strings.Builder
	desc := t.Description
	if strings.TrimSpace(desc) == "" {
		desc = "-"
	}
	done := "no"
	if t.IsCompleted {
		done = "yes"
	}
	fmt.Fprintf(&sb, "Title: %s\n", t.Title)
	fmt.Fprintf(&sb, "Description: %s\n", desc)
	fmt.Fprintf(&sb, "Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Due: %s\n", t.DueDate.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Priority: %s\n", t.Priority)
	fmt.Fprintf(&sb, "Completed: %s", done)
	switch t.Kind {
	case TaskKindWork:
		fmt.Fprintf(&sb, "\nProject: %s", t.ProjectName)
	case TaskKindRecurring:
		fmt.Fprintf(&sb, "\nRepeat every: %s", t.RepeatInterval)
	}
	return sb.String()
}
