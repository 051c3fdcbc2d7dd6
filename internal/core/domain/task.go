package domain

import (
	"errors"
	"time"
)

// TaskStatus is the lifecycle state of a task. The only transition is
// pending → completed; completion is idempotent and nothing moves a task
// back to pending.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrValidation = errors.New("validation failed")

// Task is the core aggregate. Ids are monotone and never reused. AssignedTo,
// when set, referenced an existing user at creation time and is never
// reassigned by any exposed operation.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskWithAssignee is a listing row: the task joined with its assignee's
// username. AssignedUsername is empty when the task is unassigned.
type TaskWithAssignee struct {
	Task
	AssignedUsername string
}
