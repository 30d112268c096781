package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The password must already be hashed.
	// Returns ErrUsernameExists if the username is already taken; implementations
	// detect this from the unique constraint so concurrent signups cannot both succeed.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by exact (case-sensitive) username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
