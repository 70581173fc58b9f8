package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate mirrors the currency_rates table: one USD-pivoted rate per code.
type Rate struct {
	Code            string          `json:"code"` // Primary Key, varchar(16)
	Rate            decimal.Decimal `json:"rate"` // numeric(24,8), positive
	LastRefreshedAt time.Time       `json:"lastRefreshedAt"`
}
