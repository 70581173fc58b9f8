package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// lockingLedgerStore is an in-memory TransactionRepositoryFacade whose
// balance writes serialize on a mutex the way the row lock does in Postgres:
// each write reads the capital, mutates it, and stores it back while holding
// the lock, so racing writers never observe a stale balance.
type lockingLedgerStore struct {
	mu      sync.Mutex
	capital decimal.Decimal
	entries map[string]domain.Transaction
}

func newLockingLedgerStore(capital decimal.Decimal) *lockingLedgerStore {
	return &lockingLedgerStore{
		capital: capital,
		entries: make(map[string]domain.Transaction),
	}
}

func (s *lockingLedgerStore) CreateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[txn.TransactionID] = txn
	s.capital = s.capital.Add(txn.ConvertedAmount).Round(2)
	return s.capital, nil
}

func (s *lockingLedgerStore) UpdateTransactionWithBalance(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.entries[txn.TransactionID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	s.entries[txn.TransactionID] = txn
	s.capital = s.capital.Sub(stored.ConvertedAmount).Add(txn.ConvertedAmount).Round(2)
	return s.capital, nil
}

func (s *lockingLedgerStore) DeleteTransactionWithBalance(ctx context.Context, transactionID, userID string) (*domain.Transaction, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.entries[transactionID]
	if !ok || stored.UserID != userID {
		return nil, decimal.Zero, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	delete(s.entries, transactionID)
	s.capital = s.capital.Sub(stored.ConvertedAmount).Round(2)
	return &stored, s.capital, nil
}

func (s *lockingLedgerStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.entries[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &stored, nil
}

func (s *lockingLedgerStore) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, txn := range s.entries {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (s *lockingLedgerStore) snapshot() (decimal.Decimal, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capital, len(s.entries)
}

func TestConcurrentCreates_NoLostUpdates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, DefaultCurrency: "USD", Capital: decimal.NewFromInt(100)}

	store := newLockingLedgerStore(decimal.NewFromInt(100))
	mockUserSvc := new(MockUserSvc)
	mockRateSvc := new(MockRateSvc)
	mockUserSvc.On("GetUserByID", mock.Anything, userID).Return(user, nil)
	mockRateSvc.On("Convert", mock.Anything, "USD", "USD", mock.Anything, domain.Expense).
		Return(decimal.RequireFromString("-10.00"), nil)

	service := services.NewTransactionService(store, mockUserSvc, mockRateSvc, nil)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
				Amount:       decimal.NewFromInt(10),
				Kind:         "EXPENSE",
				CategoryName: "food",
				CurrencyCode: "USD",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	capital, count := store.snapshot()
	require.Equal(t, n, count)
	require.True(t, decimal.NewFromInt(100-10*n).Equal(capital),
		"expected capital %d, got %s", 100-10*n, capital.StringFixed(2))
}

func TestConcurrentDeletes_ReverseEveryStoredDelta(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, DefaultCurrency: "USD", Capital: decimal.NewFromInt(100)}

	store := newLockingLedgerStore(decimal.NewFromInt(100))
	mockUserSvc := new(MockUserSvc)
	mockRateSvc := new(MockRateSvc)
	mockUserSvc.On("GetUserByID", mock.Anything, userID).Return(user, nil)
	mockRateSvc.On("Convert", mock.Anything, "USD", "USD", mock.Anything, domain.Expense).
		Return(decimal.RequireFromString("-10.00"), nil)

	service := services.NewTransactionService(store, mockUserSvc, mockRateSvc, nil)

	const n = 20
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		txn, _, err := service.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			Amount:       decimal.NewFromInt(10),
			Kind:         "EXPENSE",
			CategoryName: "food",
			CurrencyCode: "USD",
		})
		require.NoError(t, err)
		ids = append(ids, txn.TransactionID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(transactionID string) {
			defer wg.Done()
			_, _, err := service.DeleteTransaction(ctx, userID, transactionID)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	capital, count := store.snapshot()
	require.Zero(t, count)
	require.True(t, decimal.NewFromInt(100).Equal(capital),
		"expected capital restored to 100, got %s", capital.StringFixed(2))
}
