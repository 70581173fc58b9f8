package models

import "github.com/shopspring/decimal"

// User mirrors the users table.
type User struct {
	UserID          string          `json:"userID"` // Primary Key (UUID)
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	DefaultCurrency string          `json:"defaultCurrency"`
	Timezone        string          `json:"timezone"`
	Capital         decimal.Decimal `json:"capital"` // numeric(14,2)
	AuditFields
}
