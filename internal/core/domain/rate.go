package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PivotCurrency is the reference currency through which all cross-rates are
// computed. The rate table always contains it with a rate of exactly 1.
const PivotCurrency = "USD"

// Rate is one row of the rate table: how many units of the currency equal one
// unit in USD-equivalent terms. Rows are created on first refresh and updated
// in place afterwards, never deleted.
type Rate struct {
	Code            string          `json:"code"` // Primary Key, uppercase (e.g., "EUR")
	Rate            decimal.Decimal `json:"rate"` // Always positive
	LastRefreshedAt time.Time       `json:"lastRefreshedAt"`
}

// RateQuote is a raw quote as returned by the external rate source, expressed
// against the source's own local pivot currency (e.g. UAH for the NBU feed).
type RateQuote struct {
	Code string
	Rate decimal.Decimal
}
