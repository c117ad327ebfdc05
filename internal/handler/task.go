package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/handler/dto"
	"github.com/taskmate/taskmate/internal/service"
)

const (
	msgTaskAdded    = "Task added successfully"
	msgTaskRemoved  = "Task removed successfully"
	msgTaskUpdated  = "Task updated successfully"
	msgTaskNotFound = "Task not found"
	msgTaskTitle    = "Please provide a title"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.UserService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// Add handles POST /api/v1/addTask.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	task, err := h.svc.AddTask(r.Context(), auth.UserIDFromContext(r.Context()), service.AddTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.Response{Message: msgTaskAdded, Data: dto.ToTaskResponse(task)})
}

// Remove handles DELETE /api/v1/task/{taskId}.
func (h *TaskHandler) Remove(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")

	if err := h.svc.RemoveTask(r.Context(), auth.UserIDFromContext(r.Context()), taskID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.Response{Message: msgTaskRemoved})
}

// Toggle handles PUT /api/v1/task/{taskId}.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")

	task, err := h.svc.ToggleTask(r.Context(), auth.UserIDFromContext(r.Context()), taskID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.Response{Message: msgTaskUpdated, Data: dto.ToTaskResponse(task)})
}

func (h *TaskHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgTaskTitle)
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, msgTaskNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		writeInternalError(w, r, h.logger, err)
	}
}
