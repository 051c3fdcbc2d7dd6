package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// SessionStore owns the server-side session-id → principal binding. The core
// never reads or writes sessions directly; it only hands principals around.
type SessionStore interface {
	// Create persists the principal under a fresh session id and returns it.
	Create(ctx context.Context, p *domain.Principal) (string, error)
	// Get resolves a session id; an expired or destroyed session is
	// domain.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*domain.Principal, error)
	Destroy(ctx context.Context, sessionID string) error
}
