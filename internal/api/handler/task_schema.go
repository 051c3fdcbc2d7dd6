package handler

import "time"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	// AssignedTo arrives as a string because the assignment dropdown submits
	// its raw form value; empty or absent means unassigned.
	AssignedTo string `json:"assignedTo" validate:"omitempty,numeric"`
}

type createTaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TaskID  int64  `json:"taskId"`
}

// taskResponse matches the row shape the dashboards render: the joined
// assignee username rides along as "username", null when unassigned.
type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AssignedTo  *int64    `json:"assigned_to"`
	Username    *string   `json:"username"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type taskListResponse struct {
	Success bool           `json:"success"`
	Tasks   []taskResponse `json:"tasks"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type userListResponse struct {
	Success bool           `json:"success"`
	Users   []userResponse `json:"users"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
