package domain

import "github.com/shopspring/decimal"

// Goal is a savings goal owned by a single user.
type Goal struct {
	GoalID       string          `json:"goalID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	AuditFields
}
