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
	"github.com/shopspring/decimal"
)

const transactionColumns = `
	transaction_id, user_id, amount, kind, category_name, currency_code,
	converted_amount, occurred_at, created_at, last_updated_at`

// PgxTransactionRepository implements ledger entry persistence using pgxpool.
// Every balance-touching write locks the owner's user row first, so racing
// mutations for the same owner serialize instead of both reading the
// pre-mutation capital.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new PgxTransactionRepository.
func NewPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// lockUserCapital reads the owner's capital under FOR UPDATE inside tx.
func (r *PgxTransactionRepository) lockUserCapital(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	var capital decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT capital FROM users WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&capital)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return decimal.Zero, fmt.Errorf("failed to lock user row: %w", mapWriteError(err))
	}
	return capital, nil
}

// writeUserCapital stores the new capital inside tx.
func (r *PgxTransactionRepository) writeUserCapital(ctx context.Context, tx pgx.Tx, userID string, capital decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET capital = $1, last_updated_at = now() WHERE user_id = $2`,
		capital, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user capital: %w", mapWriteError(err))
	}
	return nil
}

// CreateTransactionWithBalance inserts the entry and applies its stored
// converted delta to the owner's capital; both commit together or neither does.
func (r *PgxTransactionRepository) CreateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	capital, err := r.lockUserCapital(ctx, tx, txn.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.TransactionID, m.UserID, m.Amount, m.Kind, m.CategoryName,
		m.CurrencyCode, m.ConvertedAmount, m.OccurredAt, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, mapWriteError(err))
	}

	newCapital := capital.Add(txn.ConvertedAmount).Round(2)
	if err := r.writeUserCapital(ctx, tx, txn.UserID, newCapital); err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, mapWriteError(err)
	}
	return newCapital, nil
}

// UpdateTransactionWithBalance rewrites the entry and adjusts the capital by
// the difference between the new converted delta and the stored one. The
// stored delta is re-read inside the transaction so a racing update cannot
// make the reversal stale.
func (r *PgxTransactionRepository) UpdateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	capital, err := r.lockUserCapital(ctx, tx, txn.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	var storedDelta decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT converted_amount FROM transactions WHERE transaction_id = $1 AND user_id = $2`,
		txn.TransactionID, txn.UserID,
	).Scan(&storedDelta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
		}
		return decimal.Zero, fmt.Errorf("failed to read stored delta: %w", mapWriteError(err))
	}

	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, `
		UPDATE transactions SET
			amount = $1, kind = $2, category_name = $3, currency_code = $4,
			converted_amount = $5, occurred_at = $6, last_updated_at = $7
		WHERE transaction_id = $8 AND user_id = $9;`,
		m.Amount, m.Kind, m.CategoryName, m.CurrencyCode,
		m.ConvertedAmount, m.OccurredAt, m.LastUpdatedAt,
		m.TransactionID, m.UserID,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, mapWriteError(err))
	}

	newCapital := capital.Sub(storedDelta).Add(txn.ConvertedAmount).Round(2)
	if err := r.writeUserCapital(ctx, tx, txn.UserID, newCapital); err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, mapWriteError(err)
	}
	return newCapital, nil
}

// DeleteTransactionWithBalance removes the entry and reverses its stored
// converted delta exactly. Entries owned by other users surface as not found.
func (r *PgxTransactionRepository) DeleteTransactionWithBalance(ctx context.Context, transactionID, userID string) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	capital, err := r.lockUserCapital(ctx, tx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var m models.Transaction
	err = tx.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;`,
		transactionID, userID,
	).Scan(
		&m.TransactionID, &m.UserID, &m.Amount, &m.Kind, &m.CategoryName,
		&m.CurrencyCode, &m.ConvertedAmount, &m.OccurredAt, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, decimal.Zero, fmt.Errorf("failed to read transaction %s: %w", transactionID, mapWriteError(err))
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to delete transaction %s: %w", transactionID, mapWriteError(err))
	}

	newCapital := capital.Sub(m.ConvertedAmount).Round(2)
	if err := r.writeUserCapital(ctx, tx, userID, newCapital); err != nil {
		return nil, decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, decimal.Zero, mapWriteError(err)
	}

	txnDomain := mapping.ToDomainTransaction(m)
	return &txnDomain, newCapital, nil
}

// FindTransactionByID retrieves a ledger entry by its ID, regardless of owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE transaction_id = $1;`,
		transactionID,
	).Scan(
		&m.TransactionID, &m.UserID, &m.Amount, &m.Kind, &m.CategoryName,
		&m.CurrencyCode, &m.ConvertedAmount, &m.OccurredAt, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a user's entries, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID, &m.UserID, &m.Amount, &m.Kind, &m.CategoryName,
			&m.CurrencyCode, &m.ConvertedAmount, &m.OccurredAt, &m.CreatedAt, &m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
