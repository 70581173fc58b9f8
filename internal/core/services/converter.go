package services

import (
	"fmt"
	"strings"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertAmount converts a non-negative magnitude from one currency to another
// against a point-in-time rate snapshot and applies the sign dictated by kind.
//
// All cross-rates go through the USD pivot: the snapshot holds units-per-USD
// for each code, so `converted = amount / rate[from] * rate[to]`. Identical
// codes pass straight through, avoiding a needless pivot round-trip. The
// result is rounded to two decimals with ties away from zero, matching
// ordinary currency rounding rather than banker's rounding.
//
// A code that is absent from the snapshot, or cached with a non-positive
// rate, yields apperrors.ErrUnknownCurrency; conversion never falls back to
// an implied 1:1 rate.
func ConvertAmount(rates map[string]decimal.Decimal, fromCode, toCode string, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))

	fromRate, ok := rates[from]
	if !ok || fromRate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok || toRate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, to)
	}

	converted := amount
	if from != to {
		converted = amount.Div(fromRate).Mul(toRate)
	}
	converted = converted.Round(2)

	if kind == domain.Expense {
		converted = converted.Neg()
	}
	return converted, nil
}
