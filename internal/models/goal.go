package models

import "github.com/shopspring/decimal"

// Goal mirrors the goals table.
type Goal struct {
	GoalID       string          `json:"goalID"` // Primary Key (UUID)
	UserID       string          `json:"userID"` // FK -> users, cascade delete
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	AuditFields
}
