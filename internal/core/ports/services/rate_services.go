package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource abstracts the external rate authority. Implementations fetch raw
// quotes denominated in the source's own local pivot currency; normalization
// against the USD pivot happens in the rate service.
type RateSource interface {
	// FetchQuotes returns the raw quote list for one refresh cycle.
	FetchQuotes(ctx context.Context) ([]domain.RateQuote, error)

	// LocalPivot returns the currency code the source's quotes are
	// denominated in (e.g. "UAH" for the NBU feed).
	LocalPivot() string
}

// RateSvcFacade provides rate-table maintenance and currency conversion.
type RateSvcFacade interface {
	// RefreshRates runs one refresh cycle: fetch, normalize against the USD
	// pivot, upsert. Returns the number of rows written. The rate table is
	// left untouched when the cycle fails.
	RefreshRates(ctx context.Context) (int, error)

	// GetRate returns the cached USD-pivoted rate for a code. USD itself is
	// always 1, even before the first refresh.
	GetRate(ctx context.Context, code string) (*domain.Rate, error)

	// ListRates returns the full rate mapping with USD defaulted to 1.
	ListRates(ctx context.Context) (map[string]decimal.Decimal, error)

	// Convert converts a non-negative magnitude from one currency to another
	// through the USD pivot using the current rate snapshot, rounds to two
	// decimals (ties away from zero) and applies the sign dictated by kind.
	Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
}
