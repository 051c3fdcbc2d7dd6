package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  *int64 // nil = unassigned; non-nil must reference an existing user
}

// TaskView is a single task as returned by the listing operations, joined
// with the assignee's username when assigned.
type TaskView struct {
	ID               int64
	Title            string
	Description      string
	AssignedTo       *int64
	AssignedUsername string
	Status           string
	CreatedAt        time.Time
}

// UserSummary is the hash-free view of a user exposed for assignment.
type UserSummary struct {
	ID       int64
	Username string
	Role     string
}

// TaskService defines the task lifecycle operations. Every method evaluates
// the access gate before doing anything else; the capability each one
// requires is documented on the method.
type TaskService interface {
	// Create requires admin. Title must be non-empty after trimming and a
	// provided assignee must exist, otherwise domain.ErrValidation.
	Create(ctx context.Context, p *domain.Principal, in CreateTaskInput) (int64, error)
	// ListAll requires admin. Newest first.
	ListAll(ctx context.Context, p *domain.Principal) ([]TaskView, error)
	// ListMine requires authentication and returns the principal's tasks.
	ListMine(ctx context.Context, p *domain.Principal) ([]TaskView, error)
	// Delete requires admin. Unconditional regardless of status.
	Delete(ctx context.Context, p *domain.Principal, taskID int64) error
	// Complete requires authentication only, not ownership. See the note on
	// the implementation.
	Complete(ctx context.Context, p *domain.Principal, taskID int64) error
	// ListAssignableUsers requires admin.
	ListAssignableUsers(ctx context.Context, p *domain.Principal) ([]UserSummary, error)
}
