package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// AuthService verifies credentials and manages the session lifecycle.
type AuthService interface {
	// Login verifies username/password and returns a signed session token
	// together with the authenticated principal. Every failure mode (empty
	// field, unknown user, wrong password) is domain.ErrInvalidCredentials
	// so the response never reveals which part was wrong.
	Login(ctx context.Context, username, password string) (string, *domain.Principal, error)
	// Logout destroys the server-side session.
	Logout(ctx context.Context, sessionID string) error
}
