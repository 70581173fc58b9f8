package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

const (
	defaultGoalPageSize = 50
	maxGoalPageSize     = 200
)

// goalService provides CRUD for savings goals.
type goalService struct {
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

// CreateGoal creates a savings goal for the user.
func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	if req.TargetAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}
	saved := decimal.Zero
	if req.SavedAmount != nil {
		if req.SavedAmount.Sign() < 0 {
			return nil, fmt.Errorf("%w: saved amount must be non-negative", apperrors.ErrValidation)
		}
		saved = *req.SavedAmount
	}

	now := time.Now().UTC()
	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  saved,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal in service: %w", err)
	}
	return &goal, nil
}

// GetGoal retrieves one of the user's goals. Goals owned by other users are
// reported as not found.
func (s *goalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
	}
	return goal, nil
}

// ListGoals retrieves the user's goals, newest first.
func (s *goalService) ListGoals(ctx context.Context, userID, nameFilter string, limit, offset int) ([]domain.Goal, error) {
	if limit <= 0 {
		limit = defaultGoalPageSize
	}
	if limit > maxGoalPageSize {
		limit = maxGoalPageSize
	}
	if offset < 0 {
		offset = 0
	}
	goals, err := s.goalRepo.ListGoals(ctx, userID, nameFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals in service: %w", err)
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

// UpdateGoal applies a partial update to one of the user's goals.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil && req.TargetAmount == nil && req.SavedAmount == nil {
		return goal, nil
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.SavedAmount != nil {
		if req.SavedAmount.Sign() < 0 {
			return nil, fmt.Errorf("%w: saved amount must be non-negative", apperrors.ErrValidation)
		}
		goal.SavedAmount = *req.SavedAmount
	}
	goal.LastUpdatedAt = time.Now().UTC()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update goal in service: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes one of the user's goals.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.GetGoal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goalRepo.DeleteGoal(ctx, goalID)
}
