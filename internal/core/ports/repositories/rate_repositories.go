package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// RateReader defines read operations for the cached rate table.
type RateReader interface {
	// FindRateByCode retrieves a single rate row by its uppercase code.
	FindRateByCode(ctx context.Context, code string) (*domain.Rate, error)

	// ListRates retrieves the full rate table.
	ListRates(ctx context.Context) ([]domain.Rate, error)
}

// RateWriter defines write operations for the cached rate table.
type RateWriter interface {
	// UpsertRates writes the given rows in a single database transaction.
	// Existing codes have only their rate overwritten; unknown codes are
	// inserted. Returns the number of rows written.
	UpsertRates(ctx context.Context, rates []domain.Rate) (int, error)
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
