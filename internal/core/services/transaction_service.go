package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 1000
)

// transactionService orchestrates ledger entry mutations. Every mutation
// converts the entry's magnitude into the owner's default currency and writes
// the entry together with the capital adjustment as one durable unit; the
// repository serializes racing mutations for the same owner via a row lock.
type transactionService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	userSvc   portssvc.UserSvcFacade
	rateSvc   portssvc.RateSvcFacade
	publisher portssvc.LedgerEventPublisher // nil when event publishing is disabled
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	userSvc portssvc.UserSvcFacade,
	rateSvc portssvc.RateSvcFacade,
	publisher portssvc.LedgerEventPublisher,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:   txnRepo,
		userSvc:   userSvc,
		rateSvc:   rateSvc,
		publisher: publisher,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateAmount rejects negative magnitudes and sub-cent precision. The
// stored amount is always a non-negative two-decimal magnitude; the sign is
// derived from the kind only when the balance is touched.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: amount must have at most two decimal places", apperrors.ErrValidation)
	}
	return nil
}

// CreateTransaction records a new ledger entry. The converted delta is stored
// on the entry itself so a later delete can reverse it exactly, independent
// of how rates move in between.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, decimal.Zero, err
	}
	kind := domain.TransactionKind(strings.ToUpper(req.Kind))
	if !kind.IsValid() {
		return nil, decimal.Zero, fmt.Errorf("%w: invalid transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if kind == domain.Expense && !domain.IsAllowedExpenseCategory(req.CategoryName) {
		return nil, decimal.Zero, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, req.CategoryName)
	}

	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	delta, err := s.rateSvc.Convert(ctx, req.CurrencyCode, user.DefaultCurrency, req.Amount, kind)
	if err != nil {
		return nil, decimal.Zero, err
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.Date != nil {
		occurredAt = req.Date.UTC()
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		Kind:            kind,
		CategoryName:    req.CategoryName,
		CurrencyCode:    strings.ToUpper(strings.TrimSpace(req.CurrencyCode)),
		ConvertedAmount: delta,
		OccurredAt:      occurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	newCapital, err := s.writeWithRetry(ctx, func() (decimal.Decimal, error) {
		return s.txnRepo.CreateTransactionWithBalance(ctx, txn)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	s.publishEvent(ctx, domain.LedgerEventCreated, txn, delta, newCapital)
	return &txn, newCapital, nil
}

// GetTransaction retrieves one of the user's entries. Entries owned by other
// users are reported as not found rather than forbidden.
func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

// ListTransactions retrieves the user's entries, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}
	if offset < 0 {
		offset = 0
	}
	txns, err := s.txnRepo.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

// UpdateTransaction applies a partial update and keeps the balance invariant:
// the stored delta is reversed and the delta recomputed from the updated
// fields (at current rates) is applied, all in one durable unit.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, decimal.Decimal, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if existing.UserID != userID {
		return nil, decimal.Zero, fmt.Errorf("%w: transaction %s belongs to another user", apperrors.ErrForbidden, transactionID)
	}

	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if req.Amount == nil && req.Kind == nil && req.CategoryName == nil && req.CurrencyCode == nil && req.Date == nil {
		return existing, user.Capital, nil
	}

	updated := *existing
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, decimal.Zero, err
		}
		updated.Amount = *req.Amount
	}
	if req.Kind != nil {
		kind := domain.TransactionKind(strings.ToUpper(*req.Kind))
		if !kind.IsValid() {
			return nil, decimal.Zero, fmt.Errorf("%w: invalid transaction kind %q", apperrors.ErrValidation, *req.Kind)
		}
		updated.Kind = kind
	}
	if req.CategoryName != nil {
		updated.CategoryName = *req.CategoryName
	}
	if req.CurrencyCode != nil {
		updated.CurrencyCode = strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
	}
	if req.Date != nil {
		updated.OccurredAt = req.Date.UTC()
	}
	if updated.Kind == domain.Expense && !domain.IsAllowedExpenseCategory(updated.CategoryName) {
		return nil, decimal.Zero, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, updated.CategoryName)
	}

	newDelta, err := s.rateSvc.Convert(ctx, updated.CurrencyCode, user.DefaultCurrency, updated.Amount, updated.Kind)
	if err != nil {
		return nil, decimal.Zero, err
	}
	updated.ConvertedAmount = newDelta
	updated.LastUpdatedAt = time.Now().UTC()

	newCapital, err := s.writeWithRetry(ctx, func() (decimal.Decimal, error) {
		return s.txnRepo.UpdateTransactionWithBalance(ctx, updated)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	s.publishEvent(ctx, domain.LedgerEventUpdated, updated, newDelta.Sub(existing.ConvertedAmount), newCapital)
	return &updated, newCapital, nil
}

// DeleteTransaction removes an entry and reverses its stored delta exactly,
// so create-then-delete always returns the capital to its prior value.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, decimal.Decimal, error) {
	txn, newCapital, err := s.txnRepo.DeleteTransactionWithBalance(ctx, transactionID, userID)
	if errors.Is(err, apperrors.ErrWriteConflict) {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance write conflict on delete, retrying once",
			slog.String("transaction_id", transactionID))
		txn, newCapital, err = s.txnRepo.DeleteTransactionWithBalance(ctx, transactionID, userID)
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	s.publishEvent(ctx, domain.LedgerEventDeleted, *txn, txn.ConvertedAmount.Neg(), newCapital)
	return txn, newCapital, nil
}

// writeWithRetry retries a balance write exactly once when the store reports
// a concurrent-mutation conflict.
func (s *transactionService) writeWithRetry(ctx context.Context, write func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	newCapital, err := write()
	if errors.Is(err, apperrors.ErrWriteConflict) {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance write conflict, retrying once")
		newCapital, err = write()
	}
	return newCapital, err
}

// publishEvent emits a ledger event best-effort. Failures are logged and
// never fail the ledger operation, which has already committed.
func (s *transactionService) publishEvent(ctx context.Context, action string, txn domain.Transaction, delta, newCapital decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := domain.LedgerEvent{
		EventID:       uuid.NewString(),
		Action:        action,
		UserID:        txn.UserID,
		TransactionID: txn.TransactionID,
		Kind:          txn.Kind,
		Delta:         delta,
		NewCapital:    newCapital,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to publish ledger event",
			slog.String("action", action),
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}
}
