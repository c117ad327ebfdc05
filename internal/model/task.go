package model

import "time"

// Task is a to-do item embedded in its owning User.
type Task struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Toggle flips the completion state and returns the new value.
func (t *Task) Toggle() bool {
	t.Completed = !t.Completed
	return t.Completed
}
