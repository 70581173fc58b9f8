package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name         string           `json:"name" binding:"required,max=128"`
	TargetAmount decimal.Decimal  `json:"targetAmount" binding:"required"`
	SavedAmount  *decimal.Decimal `json:"savedAmount,omitempty"`
}

// UpdateGoalRequest defines the partial fields allowed on goal update.
type UpdateGoalRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,max=128"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	SavedAmount  *decimal.Decimal `json:"savedAmount,omitempty"`
}

// GoalResponse defines the data returned for a savings goal.
type GoalResponse struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
}

// ToGoalResponse converts a domain.Goal to a GoalResponse DTO
func ToGoalResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:       goal.GoalID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
		SavedAmount:  goal.SavedAmount,
	}
}

// ToListGoalResponse converts a slice of domain.Goal to response DTOs
func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i := range goals {
		res[i] = ToGoalResponse(&goals[i])
	}
	return res
}
