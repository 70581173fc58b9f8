package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger event actions.
const (
	LedgerEventCreated = "entry_created"
	LedgerEventUpdated = "entry_updated"
	LedgerEventDeleted = "entry_deleted"
)

// LedgerEvent describes a committed balance mutation. Events are published
// best-effort after the database transaction commits; consumers must treat
// them as notifications, not as the source of truth.
type LedgerEvent struct {
	EventID       string          `json:"event_id"`
	Action        string          `json:"action"`
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	Kind          TransactionKind `json:"kind"`
	Delta         decimal.Decimal `json:"delta"`
	NewCapital    decimal.Decimal `json:"new_capital"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
