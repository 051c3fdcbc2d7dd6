package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// TaskRepository persists tasks. Listings are joined with the assignee's
// username and ordered by creation time descending (newest first).
type TaskRepository interface {
	// Insert persists a new task and returns its id. Ids are assigned
	// monotonically by the store and never reused.
	Insert(ctx context.Context, task *domain.Task) (int64, error)
	ListAll(ctx context.Context) ([]domain.TaskWithAssignee, error)
	ListByAssignee(ctx context.Context, userID int64) ([]domain.TaskWithAssignee, error)
	// Delete removes the task unconditionally regardless of status;
	// domain.ErrTaskNotFound when no task with that id exists.
	Delete(ctx context.Context, id int64) error
	// MarkCompleted sets status to completed. Idempotent: an already
	// completed task is matched and reported as success. Missing id is
	// domain.ErrTaskNotFound.
	MarkCompleted(ctx context.Context, id int64) error
}
