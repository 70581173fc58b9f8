package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// GoalReader defines read operations for savings goals
type GoalReader interface {
	// FindGoalByID retrieves a goal by ID, regardless of owner.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// ListGoals retrieves a user's goals, newest first. An empty nameFilter
	// matches all goals.
	ListGoals(ctx context.Context, userID, nameFilter string, limit, offset int) ([]domain.Goal, error)
}

// GoalWriter defines write operations for savings goals
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal persists changes to an existing goal.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
