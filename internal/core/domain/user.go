package domain

import "github.com/shopspring/decimal"

// User represents an application user in the domain. The capital field is the
// running balance in the user's default currency and is mutated only by the
// transaction service, never by handlers directly.
type User struct {
	UserID          string          `json:"userID"` // Primary Key (UUID)
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	DefaultCurrency string          `json:"defaultCurrency"`
	Timezone        string          `json:"timezone,omitempty"`
	Capital         decimal.Decimal `json:"capital"`
	AuditFields
}
