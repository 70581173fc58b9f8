package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/fintrackhq/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the rate table persistence using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(pool *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// UpsertRates writes all rows in one database transaction so a refresh is
// all-or-nothing: concurrent readers see either the previous table or the
// fully updated one, never a partial batch. An upsert overwrites only the
// rate of an existing code, never its identity.
func (r *PgxRateRepository) UpsertRates(ctx context.Context, rates []domain.Rate) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, rate := range rates {
		m := mapping.ToModelRate(rate)
		batch.Queue(`
			INSERT INTO currency_rates (code, rate, last_refreshed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET
				rate = EXCLUDED.rate,
				last_refreshed_at = EXCLUDED.last_refreshed_at;`,
			m.Code, m.Rate, m.LastRefreshedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range rates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to upsert rate batch: %w", mapWriteError(err))
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close rate batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(rates), nil
}

// FindRateByCode retrieves a single rate row by its uppercase code.
func (r *PgxRateRepository) FindRateByCode(ctx context.Context, code string) (*domain.Rate, error) {
	query := `
		SELECT code, rate, last_refreshed_at
		FROM currency_rates
		WHERE code = $1;
	`

	var m models.Rate
	err := r.Pool.QueryRow(ctx, query, code).Scan(&m.Code, &m.Rate, &m.LastRefreshedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: rate for currency %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find rate by code: %w", err)
	}

	rate := mapping.ToDomainRate(m)
	return &rate, nil
}

// ListRates retrieves the full rate table.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.Rate, error) {
	query := `
		SELECT code, rate, last_refreshed_at
		FROM currency_rates
		ORDER BY code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	var modelRates []models.Rate
	for rows.Next() {
		var m models.Rate
		if err := rows.Scan(&m.Code, &m.Rate, &m.LastRefreshedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}

	return mapping.ToDomainRateSlice(modelRates), nil
}
