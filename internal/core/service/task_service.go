package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/access"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

type taskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	log   zerolog.Logger
}

// NewTaskService returns a TaskService implementation. Validation lives here,
// not in the repositories: the stores stay dumb persistence and every
// business rule sits in one place.
func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, log zerolog.Logger) ports.TaskService {
	return &taskService{tasks: tasks, users: users, log: log}
}

func (s *taskService) Create(ctx context.Context, p *domain.Principal, in ports.CreateTaskInput) (int64, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return 0, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	if in.AssignedTo != nil {
		if _, err := s.users.FindByID(ctx, *in.AssignedTo); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return 0, fmt.Errorf("%w: assigned user does not exist", domain.ErrValidation)
			}
			return 0, err
		}
	}

	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		AssignedTo:  in.AssignedTo,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return 0, err
	}

	s.log.Info().Int64("task_id", id).Str("created_by", p.Username).Msg("task created")
	return id, nil
}

func (s *taskService) ListAll(ctx context.Context, p *domain.Principal) ([]ports.TaskView, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return nil, err
	}

	rows, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return toTaskViews(rows), nil
}

func (s *taskService) ListMine(ctx context.Context, p *domain.Principal) ([]ports.TaskView, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return nil, err
	}

	rows, err := s.tasks.ListByAssignee(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list my tasks: %w", err)
	}
	return toTaskViews(rows), nil
}

func (s *taskService) Delete(ctx context.Context, p *domain.Principal, taskID int64) error {
	if err := access.Check(p, access.Admin); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.log.Info().Int64("task_id", taskID).Str("deleted_by", p.Username).Msg("task deleted")
	return nil
}

// Complete requires only an authenticated principal. It deliberately does
// not check that the caller is the assignee. Route exposure is what keeps
// the operation on the staff dashboard in practice; this is a known
// authorization gap preserved from the underlying behavior.
func (s *taskService) Complete(ctx context.Context, p *domain.Principal, taskID int64) error {
	if err := access.Check(p, access.Authenticated); err != nil {
		return err
	}

	if err := s.tasks.MarkCompleted(ctx, taskID); err != nil {
		return err
	}

	s.log.Info().Int64("task_id", taskID).Str("completed_by", p.Username).Msg("task completed")
	return nil
}

func (s *taskService) ListAssignableUsers(ctx context.Context, p *domain.Principal) ([]ports.UserSummary, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserSummary{ID: u.ID, Username: u.Username, Role: string(u.Role)})
	}
	return out, nil
}

func toTaskViews(rows []domain.TaskWithAssignee) []ports.TaskView {
	out := make([]ports.TaskView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.TaskView{
			ID:               r.ID,
			Title:            r.Title,
			Description:      r.Description,
			AssignedTo:       r.AssignedTo,
			AssignedUsername: r.AssignedUsername,
			Status:           string(r.Status),
			CreatedAt:        r.CreatedAt,
		})
	}
	return out
}
