package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// SeedUsers bootstraps the credential store with the fixture admin and staff
// accounts when it is empty. This is the only path that creates users; the
// runtime API has no registration endpoint.
func SeedUsers(ctx context.Context, users ports.UserRepository, adminPassword, staffPassword string, log zerolog.Logger) error {
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		log.Debug().Int64("users", n).Msg("credential store already seeded")
		return nil
	}

	fixtures := []struct {
		username string
		password string
		role     domain.Role
	}{
		{"admin", adminPassword, domain.RoleAdmin},
		{"staff", staffPassword, domain.RoleStaff},
	}

	for _, f := range fixtures {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", f.username, err)
		}

		user := &domain.User{
			Username:     f.username,
			PasswordHash: string(hash),
			Role:         f.role,
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := users.Create(ctx, user); err != nil {
			// A concurrent replica may have won the race on the unique index.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return fmt.Errorf("seed: create user %s: %w", f.username, err)
		}
		log.Info().Str("username", f.username).Str("role", string(f.role)).Msg("seed user created")
	}

	return nil
}
