package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a ledger entry by its ID, regardless of owner.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a user's entries, newest first.
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries. Every write
// combines the entry mutation and the owner's capital adjustment in one
// database transaction with the user row locked, so concurrent mutations for
// the same owner serialize instead of losing updates.
type TransactionWriter interface {
	// CreateTransactionWithBalance inserts the entry and applies its
	// ConvertedAmount to the owner's capital. Returns the new capital.
	CreateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)

	// UpdateTransactionWithBalance rewrites the entry and applies the
	// difference between its new ConvertedAmount and the stored one to the
	// owner's capital. Returns the new capital.
	UpdateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)

	// DeleteTransactionWithBalance removes the entry and reverses its stored
	// ConvertedAmount. Returns the deleted entry and the new capital.
	DeleteTransactionWithBalance(ctx context.Context, transactionID, userID string) (*domain.Transaction, decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all ledger-entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
