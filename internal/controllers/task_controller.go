package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Sl1me945/TaskManager/internal/dtos"
	"github.com/Sl1me945/TaskManager/internal/middleware"
	"github.com/Sl1me945/TaskManager/internal/services"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

var taskValidate = validator.New()

type TaskController struct {
	taskService services.TaskService
}

func NewTaskController(taskService services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// List handles GET /tasks with optional query refinements:
// ?q=keyword, ?completed=true|false, ?sort=due_asc|due_desc.
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	var (
		tasks []dtos.TaskResponse
		err   error
	)
	switch {
	case r.URL.Query().Get("q") != "":
		tasks, err = c.collect(func() ([]dtos.TaskResponse, error) {
			found, err := c.taskService.Search(r.Context(), token, r.URL.Query().Get("q"))
			return dtos.NewTaskListResponse(found), err
		})
	case r.URL.Query().Get("completed") != "":
		completed := r.URL.Query().Get("completed") == "true"
		tasks, err = c.collect(func() ([]dtos.TaskResponse, error) {
			found, err := c.taskService.FilterByCompletion(r.Context(), token, completed)
			return dtos.NewTaskListResponse(found), err
		})
	case r.URL.Query().Get("sort") != "":
		ascending := r.URL.Query().Get("sort") != "due_desc"
		tasks, err = c.collect(func() ([]dtos.TaskResponse, error) {
			found, err := c.taskService.SortByDueDate(r.Context(), token, ascending)
			return dtos.NewTaskListResponse(found), err
		})
	default:
		tasks, err = c.collect(func() ([]dtos.TaskResponse, error) {
			found, err := c.taskService.List(r.Context(), token)
			return dtos.NewTaskListResponse(found), err
		})
	}

	if err != nil {
		respondTaskError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tasks)
}

func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := taskValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid task fields", nil, err)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	task := req.ToTask(uuid.Nil) // owner is resolved from the token
	if err := c.taskService.Add(r.Context(), token, task); err != nil {
		respondTaskError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewTaskResponse(*task))
}

func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	token := middleware.TokenFromContext(r.Context())
	if err := c.taskService.Remove(r.Context(), token, taskID); err != nil {
		respondTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *TaskController) Complete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	token := middleware.TokenFromContext(r.Context())
	if err := c.taskService.MarkCompleted(r.Context(), token, taskID); err != nil {
		respondTaskError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (c *TaskController) collect(fn func() ([]dtos.TaskResponse, error)) ([]dtos.TaskResponse, error) {
	tasks, err := fn()
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []dtos.TaskResponse{}
	}
	return tasks, nil
}

func taskIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid task id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func respondTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrTokenExpired), errors.Is(err, utils.ErrTokenRevoked):
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Session expired, please sign in again", nil, err)
	case errors.Is(err, utils.ErrUnauthorized):
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, err)
	case errors.Is(err, utils.ErrTaskNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Task not found", nil)
	case errors.Is(err, utils.ErrUserNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", nil)
	case errors.Is(err, utils.ErrInvalidInput):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid task fields", nil)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Task operation failed", nil, err)
	}
}
