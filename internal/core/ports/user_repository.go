package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// UserRepository is the credential store. The runtime path only reads;
// Create and Count exist for the bootstrap seed, which is where username
// uniqueness is enforced.
type UserRepository interface {
	// FindByUsername does an exact, case-sensitive lookup. A missing user is
	// domain.ErrUserNotFound, not a storage failure.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns every user ordered by id. Password hashes stay behind
	// this boundary; the service layer exposes only id/username/role.
	List(ctx context.Context) ([]*domain.User, error)
	// Create inserts a new user; a duplicate username is domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
