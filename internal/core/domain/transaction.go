package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger entry. The kind decides the sign applied
// to the converted amount when the owner's capital is adjusted: expenses
// subtract, income and transfers add.
type TransactionKind string

const (
	Expense  TransactionKind = "EXPENSE"
	Income   TransactionKind = "INCOME"
	Transfer TransactionKind = "TRANSFER"
)

// IsValid reports whether k is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case Expense, Income, Transfer:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Amount is always a non-negative
// magnitude in the entry's own currency; ConvertedAmount is the signed delta
// (in the owner's default currency) that was applied to the owner's capital
// when the entry was written, and is reversed exactly on delete.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	Kind            TransactionKind `json:"kind"`
	CategoryName    string          `json:"categoryName"`
	CurrencyCode    string          `json:"currencyCode"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	OccurredAt      time.Time       `json:"occurredAt"`
	AuditFields
}

// allowedExpenseCategories is the fixed category set the frontend offers for
// expenses. Income and transfer categories are free-form.
var allowedExpenseCategories = map[string]struct{}{
	"shopping": {}, "food": {}, "phone": {}, "entertainment": {},
	"education": {}, "beauty": {}, "sports": {}, "social": {},
	"transportation": {}, "clothing": {}, "car": {}, "alcohol": {},
	"cigarettes": {}, "electronics": {}, "travel": {}, "health": {},
	"pets": {}, "repairs": {}, "housing": {}, "home": {},
	"gifts": {}, "donations": {}, "lottery": {}, "kids": {},
}

// IsAllowedExpenseCategory reports whether name is a recognised expense category.
func IsAllowedExpenseCategory(name string) bool {
	_, ok := allowedExpenseCategories[name]
	return ok
}
