package dto

import (
	"time"

	"github.com/taskmate/taskmate/internal/model"
)

// AddTaskRequest represents the request body for adding a task.
type AddTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToTaskResponse converts a model.Task to TaskResponse.
func ToTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}
