package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
// Amount is a non-negative magnitude in the entry's own currency; the sign is
// derived from the kind when the balance is touched.
type CreateTransactionRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Kind         string          `json:"kind" binding:"required,txnkind"`
	CategoryName string          `json:"categoryName" binding:"required,max=64"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,min=3,max=16"`
	Date         *time.Time      `json:"date,omitempty"`
}

// UpdateTransactionRequest defines the partial fields allowed on entry update.
type UpdateTransactionRequest struct {
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Kind         *string          `json:"kind,omitempty" binding:"omitempty,txnkind"`
	CategoryName *string          `json:"categoryName,omitempty" binding:"omitempty,max=64"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,uppercase,min=3,max=16"`
	Date         *time.Time       `json:"date,omitempty"`
}

// TransactionResponse defines the data returned for a ledger entry. NewCapital
// is populated only by operations that moved the owner's balance.
type TransactionResponse struct {
	TransactionID   string           `json:"transactionID"`
	Amount          decimal.Decimal  `json:"amount"`
	Kind            string           `json:"kind"`
	CategoryName    string           `json:"categoryName"`
	CurrencyCode    string           `json:"currencyCode"`
	ConvertedAmount decimal.Decimal  `json:"convertedAmount"`
	Date            time.Time        `json:"date"`
	NewCapital      *decimal.Decimal `json:"newCapital,omitempty"`
}

// DeleteTransactionResponse confirms an entry removal.
type DeleteTransactionResponse struct {
	Message       string          `json:"message"`
	TransactionID string          `json:"transactionID"`
	NewCapital    decimal.Decimal `json:"newCapital"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction, newCapital *decimal.Decimal) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount,
		Kind:            string(txn.Kind),
		CategoryName:    txn.CategoryName,
		CurrencyCode:    txn.CurrencyCode,
		ConvertedAmount: txn.ConvertedAmount,
		Date:            txn.OccurredAt,
		NewCapital:      newCapital,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i], nil)
	}
	return res
}
