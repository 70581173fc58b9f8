package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// userService provides profile operations for authenticated users. Identity
// issuance and credential management are the identity provider's concern;
// this service only ever sees a resolved owner ID.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	rateRepo portsrepo.RateReader
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, rateRepo portsrepo.RateReader) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		rateRepo: rateRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Changing the default currency
// requires a usable cached rate for it, otherwise future conversions would
// start failing for every entry the user records.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username == nil && req.Email == nil && req.DefaultCurrency == nil && req.Timezone == nil {
		return user, nil
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.DefaultCurrency != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.DefaultCurrency))
		if code != domain.PivotCurrency {
			rate, err := s.rateRepo.FindRateByCode(ctx, code)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unsupported default currency %q", apperrors.ErrValidation, code)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to validate default currency: %w", err)
			}
			if rate.Rate.Sign() <= 0 {
				return nil, fmt.Errorf("%w: unsupported default currency %q", apperrors.ErrValidation, code)
			}
		}
		user.DefaultCurrency = code
	}
	user.LastUpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		// ErrDuplicate surfaces username/email uniqueness violations.
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user; entries and goals go with them via cascade.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}
