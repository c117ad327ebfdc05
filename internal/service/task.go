package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskmate/taskmate/internal/model"
)

// AddTaskInput defines input for adding a task.
type AddTaskInput struct {
	Title       string
	Description string
}

// AddTask appends a pending task to the user's list.
func (s *UserService) AddTask(ctx context.Context, userID string, input AddTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	task := model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   s.now(),
	}
	user.Tasks = append(user.Tasks, task)

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", mapStoreError(err))
	}
	s.metrics.IncTaskAdded()

	return &task, nil
}

// RemoveTask deletes the task with the given id. Removing an id that is not
// in the list succeeds without changing anything.
func (s *UserService) RemoveTask(ctx context.Context, userID, taskID string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return mapStoreError(err)
	}

	if !user.RemoveTask(taskID) {
		return nil
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", mapStoreError(err))
	}
	s.metrics.IncTaskRemoved()

	return nil
}

// ToggleTask flips the completed flag of the task with the given id.
func (s *UserService) ToggleTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	task := user.FindTask(taskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	task.Toggle()
	updated := *task

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", mapStoreError(err))
	}
	s.metrics.IncTaskToggled()

	return &updated, nil
}
