// Package cli implements the menu-driven console front end. It holds
// the current session token and switches between the auth menu and the
// main menu based on whether one is present.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/services"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

type Runner struct {
	authService services.AuthService
	taskService services.TaskService

	in  *bufio.Scanner
	out io.Writer

	currentToken string
}

func NewRunner(authService services.AuthService, taskService services.TaskService, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		authService: authService,
		taskService: taskService,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run drives the menu loop until the user exits or input ends.
func (r *Runner) Run(ctx context.Context) error {
	utils.Logger.Info("TaskManager started")
	r.printBanner()

	for {
		var done bool
		if r.currentToken == "" {
			done = r.authMenu(ctx)
		} else {
			done = r.mainMenu(ctx)
		}
		if done {
			return nil
		}
	}
}

func (r *Runner) printBanner() {
	fmt.Fprintln(r.out, "========================================")
	fmt.Fprintln(r.out, "          TaskManager CLI")
	fmt.Fprintln(r.out, "========================================")
}

func (r *Runner) authMenu(ctx context.Context) (done bool) {
	fmt.Fprintln(r.out, "\n=== Authentication Menu ===")
	fmt.Fprintln(r.out, "1. Sign In")
	fmt.Fprintln(r.out, "2. Sign Up")
	fmt.Fprintln(r.out, "3. Exit")

	switch r.prompt("Select option: ") {
	case "1":
		r.signIn(ctx)
	case "2":
		r.signUp(ctx)
	case "3", "":
		return true
	default:
		fmt.Fprintln(r.out, "Unknown option")
	}
	return false
}

func (r *Runner) mainMenu(ctx context.Context) (done bool) {
	fmt.Fprintln(r.out, "\n=== Main Menu ===")
	fmt.Fprintln(r.out, "1. View tasks")
	fmt.Fprintln(r.out, "2. Add task")
	fmt.Fprintln(r.out, "3. Remove task")
	fmt.Fprintln(r.out, "4. Mark task completed")
	fmt.Fprintln(r.out, "5. Search tasks")
	fmt.Fprintln(r.out, "6. Sort tasks by due date")
	fmt.Fprintln(r.out, "7. Filter tasks by completion")
	fmt.Fprintln(r.out, "8. Sign Out")

	switch r.prompt("Select option: ") {
	case "1":
		r.showTasks(ctx, func() ([]models.Task, error) {
			return r.taskService.List(ctx, r.currentToken)
		})
	case "2":
		r.addTask(ctx)
	case "3":
		r.removeTask(ctx)
	case "4":
		r.completeTask(ctx)
	case "5":
		keyword := r.prompt("Keyword: ")
		r.showTasks(ctx, func() ([]models.Task, error) {
			return r.taskService.Search(ctx, r.currentToken, keyword)
		})
	case "6":
		ascending := r.prompt("Ascending? (y/n): ") != "n"
		r.showTasks(ctx, func() ([]models.Task, error) {
			return r.taskService.SortByDueDate(ctx, r.currentToken, ascending)
		})
	case "7":
		completed := r.prompt("Completed only? (y/n): ") == "y"
		r.showTasks(ctx, func() ([]models.Task, error) {
			return r.taskService.FilterByCompletion(ctx, r.currentToken, completed)
		})
	case "8", "":
		r.authService.SignOut(ctx, r.currentToken)
		r.currentToken = ""
		fmt.Fprintln(r.out, "Signed out")
	default:
		fmt.Fprintln(r.out, "Unknown option")
	}
	return false
}

func (r *Runner) signIn(ctx context.Context) {
	username := r.prompt("Username: ")
	password := r.prompt("Password: ")

	token, err := r.authService.SignIn(ctx, username, password)
	if err != nil {
		// Never reveal whether the username exists.
		fmt.Fprintln(r.out, "Invalid username or password")
		return
	}
	r.currentToken = token
	fmt.Fprintf(r.out, "Welcome, %s!\n", username)
}

func (r *Runner) signUp(ctx context.Context) {
	username := r.prompt("Username: ")
	password := r.prompt("Password: ")

	err := r.authService.SignUp(ctx, username, password)
	switch {
	case err == nil:
		fmt.Fprintln(r.out, "Account created, you can sign in now")
	case errors.Is(err, utils.ErrUsernameTaken):
		fmt.Fprintln(r.out, "This username is already taken")
	case errors.Is(err, utils.ErrInvalidInput), errors.Is(err, utils.ErrEmptyPassword):
		fmt.Fprintln(r.out, "Username and password must not be empty")
	default:
		fmt.Fprintln(r.out, "Sign up failed, please try again")
	}
}

func (r *Runner) addTask(ctx context.Context) {
	kind := r.prompt("Kind (simple/work/recurring): ")
	title := r.prompt("Title: ")
	description := r.prompt("Description: ")

	dueDate, err := time.Parse("2006-01-02", r.prompt("Due date (YYYY-MM-DD): "))
	if err != nil {
		fmt.Fprintln(r.out, "Invalid date")
		return
	}

	priority := models.PriorityMedium
	if p, err := strconv.Atoi(r.prompt("Priority (0=low 1=medium 2=high): ")); err == nil && p >= 0 && p <= 2 {
		priority = models.Priority(p)
	}

	var task *models.Task
	switch models.TaskKind(kind) {
	case models.TaskKindWork:
		project := r.prompt("Project name: ")
		task = models.NewWorkTask(uuid.Nil, title, description, dueDate, priority, project)
	case models.TaskKindRecurring:
		days, err := strconv.Atoi(r.prompt("Repeat every N days: "))
		if err != nil || days < 1 {
			fmt.Fprintln(r.out, "Invalid interval")
			return
		}
		interval := time.Duration(days) * 24 * time.Hour
		task = models.NewRecurringTask(uuid.Nil, title, description, dueDate, priority, interval)
	default:
		task = models.NewSimpleTask(uuid.Nil, title, description, dueDate, priority)
	}

	if err := r.taskService.Add(ctx, r.currentToken, task); err != nil {
		r.reportTaskError(err)
		return
	}
	fmt.Fprintf(r.out, "Task added: %s\n", task.ID)
}

func (r *Runner) removeTask(ctx context.Context) {
	id, err := uuid.Parse(r.prompt("Task id: "))
	if err != nil {
		fmt.Fprintln(r.out, "Invalid task id")
		return
	}
	if err := r.taskService.Remove(ctx, r.currentToken, id); err != nil {
		r.reportTaskError(err)
		return
	}
	fmt.Fprintln(r.out, "Task removed")
}

func (r *Runner) completeTask(ctx context.Context) {
	id, err := uuid.Parse(r.prompt("Task id: "))
	if err != nil {
		fmt.Fprintln(r.out, "Invalid task id")
		return
	}
	if err := r.taskService.MarkCompleted(ctx, r.currentToken, id); err != nil {
		r.reportTaskError(err)
		return
	}
	fmt.Fprintln(r.out, "Task completed")
}

func (r *Runner) showTasks(ctx context.Context, fetch func() ([]models.Task, error)) {
	tasks, err := fetch()
	if err != nil {
		r.reportTaskError(err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks")
		return
	}
	for i, t := range tasks {
		fmt.Fprintf(r.out, "\n--- Task %d (%s) ---\n%s\n", i+1, t.ID, t.String())
	}
}

// reportTaskError drops the session on auth failures so the loop falls
// back to the auth menu.
func (r *Runner) reportTaskError(err error) {
	switch {
	case errors.Is(err, utils.ErrUnauthorized):
		fmt.Fprintln(r.out, "Session expired, please sign in again")
		r.currentToken = ""
	case errors.Is(err, utils.ErrTaskNotFound):
		fmt.Fprintln(r.out, "Task not found")
	case errors.Is(err, utils.ErrInvalidInput):
		fmt.Fprintln(r.out, "Task title must not be empty")
	default:
		fmt.Fprintln(r.out, "Operation failed, please try again")
	}
}

func (r *Runner) prompt(label string) string {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return ""
	}
	return strings.TrimSpace(r.in.Text())
}
