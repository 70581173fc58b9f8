package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`        // FK -> users, cascade delete
	Amount          decimal.Decimal `json:"amount"`        // numeric(14,2), non-negative
	Kind            string          `json:"kind"`
	CategoryName    string          `json:"categoryName"`
	CurrencyCode    string          `json:"currencyCode"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // signed delta applied to capital
	OccurredAt      time.Time       `json:"occurredAt"`
	AuditFields
}
