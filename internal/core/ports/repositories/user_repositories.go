package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// UpdateUser persists changes to an existing user. Returns
	// apperrors.ErrDuplicate when a username/email uniqueness constraint is hit.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user and, via cascade, their entries and goals.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
