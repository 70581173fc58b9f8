package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// UserSvcFacade provides the profile operations for the authenticated user.
// Account provisioning and credential management live in the identity
// provider, not here.
type UserSvcFacade interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUser applies a partial profile update. A default-currency change
	// is validated against the cached rate table.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser removes the user together with their entries and goals.
	DeleteUser(ctx context.Context, userID string) error
}
