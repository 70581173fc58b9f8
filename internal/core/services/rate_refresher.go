package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
)

// RateRefresher drives the periodic refresh cycle as a background task with
// its own error boundary. A failed cycle is logged and retried on the next
// tick; it never propagates into request-serving goroutines, which keep using
// the last good cached rates.
type RateRefresher struct {
	rateSvc  portssvc.RateSvcFacade
	interval time.Duration
	eager    bool
	logger   *slog.Logger
}

// NewRateRefresher creates a refresher. When eager is set, one cycle runs
// immediately at startup instead of waiting for the first tick.
func NewRateRefresher(rateSvc portssvc.RateSvcFacade, interval time.Duration, eager bool, logger *slog.Logger) *RateRefresher {
	return &RateRefresher{
		rateSvc:  rateSvc,
		interval: interval,
		eager:    eager,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, triggering one refresh per interval.
// Callers start it in its own goroutine.
func (r *RateRefresher) Run(ctx context.Context) {
	r.logger.Info("Rate refresher started", slog.Duration("interval", r.interval), slog.Bool("eager", r.eager))

	if r.eager {
		r.refreshOnce(ctx)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Rate refresher stopping")
			return
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

func (r *RateRefresher) refreshOnce(ctx context.Context) {
	count, err := r.rateSvc.RefreshRates(ctx)
	if err != nil {
		r.logger.Error("Currency refresh cycle failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Info("Currencies refreshed", slog.Int("rows_updated", count))
}
