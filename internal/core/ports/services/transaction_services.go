package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade maintains the ledger: every create, update and delete
// adjusts the owner's capital atomically with the entry write.
type TransactionSvcFacade interface {
	// CreateTransaction records a new entry and applies its converted delta
	// to the owner's capital. Returns the entry and the new capital.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error)

	// GetTransaction retrieves one of the user's entries.
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's entries, newest first.
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)

	// UpdateTransaction modifies an entry; the owner's capital is adjusted by
	// reversing the stored delta and applying the recomputed one.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, decimal.Decimal, error)

	// DeleteTransaction removes an entry and reverses its stored delta
	// exactly. Returns the deleted entry and the new capital.
	DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, decimal.Decimal, error)
}
