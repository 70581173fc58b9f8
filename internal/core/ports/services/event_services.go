package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// LedgerEventPublisher publishes committed balance mutations to downstream
// consumers. Publishing is best-effort: failures are logged by the caller and
// never fail the ledger operation itself.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error
	Close() error
}
