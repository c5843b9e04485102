package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/middleware"
	"github.com/marcos/task-tracker-project/internal/service"
)

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler struct {
	tasks    *service.TaskRegistry
	validate *validator.Validate
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(tasks *service.TaskRegistry, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		validate: validate,
	}
}

func callerOrAbort(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	}
	return caller, ok
}

// CreateTaskRequest представляет тело запроса на создание задачи
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required"`
	AssigneeIDs []string `json:"assignee_ids"`
}

// Create обрабатывает POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "INVALID_INPUT", "title is required")
		return
	}

	task, err := h.tasks.Create(r.Context(), caller, service.CreateTaskInput{
		Title:       req.Title,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, task)
}

// List обрабатывает GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTaskRequest представляет тело запроса на изменение деталей задачи
type UpdateTaskRequest struct {
	Title *string `json:"title"`
}

// UpdateDetails обрабатывает PUT /tasks/{id}
func (h *TaskHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	task, err := h.tasks.UpdateDetails(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateTaskInput{
		Title: req.Title,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// AssignRequest представляет тело запроса на назначение исполнителей
type AssignRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1"`
}

// Assign обрабатывает POST /tasks/{id}/assign
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "INVALID_INPUT", "user_ids must be a non-empty array")
		return
	}

	task, err := h.tasks.AssignUsers(r.Context(), caller, chi.URLParam(r, "id"), req.UserIDs)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateStatusRequest представляет тело запроса на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus обрабатывает PATCH /tasks/{id}/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "INVALID_INPUT", "status is required")
		return
	}

	task, err := h.tasks.UpdateStatus(r.Context(), caller, chi.URLParam(r, "id"), domain.TaskStatus(req.Status))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTaskResponse представляет ответ на удаление задачи
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// Delete обрабатывает DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrAbort(w, r)
	if !ok {
		return
	}

	deleted, err := h.tasks.Delete(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{Deleted: deleted})
}
