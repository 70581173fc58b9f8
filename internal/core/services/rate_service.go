package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// rateScale is the stored precision of normalized rates. Fixing the scale
// keeps refresh idempotent: identical source data always produces
// byte-identical rows.
const rateScale = 8

// rateService maintains the cached rate table and performs conversions
// against it.
type rateService struct {
	rateRepo portsrepo.RateRepositoryFacade
	source   portssvc.RateSource
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, source portssvc.RateSource) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo: rateRepo,
		source:   source,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// RefreshRates runs one refresh cycle against the external source.
//
// The source's quotes are denominated in its own local pivot (UAH for the
// NBU); the USD quote is the local-unit price of one USD and anchors the
// normalization: USD maps to exactly 1, the local pivot maps to the raw USD
// quote, and every other code maps to raw_USD / raw_code. A missing or
// non-positive USD quote aborts the whole cycle before anything is written,
// so a bad response can never corrupt the cached table. Individual bad
// quotes are skipped, not fatal.
func (s *rateService) RefreshRates(ctx context.Context) (int, error) {
	quotes, err := s.source.FetchQuotes(ctx)
	if err != nil {
		return 0, err
	}

	localPivot := strings.ToUpper(s.source.LocalPivot())

	var usdLocal decimal.Decimal
	for _, q := range quotes {
		if q.Code == domain.PivotCurrency {
			usdLocal = q.Rate
			break
		}
	}
	if usdLocal.Sign() <= 0 {
		return 0, fmt.Errorf("%w: USD pivot quote missing or non-positive", apperrors.ErrRateSourceMalformed)
	}

	now := time.Now().UTC()
	rates := []domain.Rate{
		{Code: domain.PivotCurrency, Rate: decimal.NewFromInt(1), LastRefreshedAt: now},
	}
	seen := map[string]struct{}{domain.PivotCurrency: {}}
	// A USD-pivoted source needs no separate local-pivot row.
	if localPivot != domain.PivotCurrency {
		rates = append(rates, domain.Rate{Code: localPivot, Rate: usdLocal.Round(rateScale), LastRefreshedAt: now})
		seen[localPivot] = struct{}{}
	}
	skipped := 0
	for _, q := range quotes {
		if _, dup := seen[q.Code]; dup {
			continue
		}
		if q.Rate.Sign() <= 0 {
			skipped++
			continue
		}
		seen[q.Code] = struct{}{}
		rates = append(rates, domain.Rate{
			Code:            q.Code,
			Rate:            usdLocal.DivRound(q.Rate, rateScale),
			LastRefreshedAt: now,
		})
	}

	count, err := s.rateRepo.UpsertRates(ctx, rates)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert refreshed rates: %w", err)
	}

	if skipped > 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("Skipped malformed quotes during rate refresh", slog.Int("skipped", skipped))
	}
	return count, nil
}

// GetRate returns the cached rate for a single code. The USD pivot is always
// reported as exactly 1, even before the first successful refresh.
func (s *rateService) GetRate(ctx context.Context, code string) (*domain.Rate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 || len(code) > 16 {
		return nil, fmt.Errorf("%w: currency code must be 3-16 characters", apperrors.ErrValidation)
	}

	if code == domain.PivotCurrency {
		return &domain.Rate{Code: domain.PivotCurrency, Rate: decimal.NewFromInt(1)}, nil
	}

	rate, err := s.rateRepo.FindRateByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate in service: %w", err)
	}
	return rate, nil
}

// ListRates returns the full cached mapping, with USD defaulted to 1 if the
// table has never been refreshed.
func (s *rateService) ListRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	return s.ratesSnapshot(ctx)
}

// Convert takes a point-in-time snapshot of the rate table and converts
// through the USD pivot. Refreshes racing with conversion are fine: the
// snapshot is either fully pre- or fully post-refresh, never partial.
func (s *rateService) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	snapshot, err := s.ratesSnapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return ConvertAmount(snapshot, fromCode, toCode, amount, kind)
}

func (s *rateService) ratesSnapshot(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates in service: %w", err)
	}
	snapshot := make(map[string]decimal.Decimal, len(rows)+1)
	for _, r := range rows {
		snapshot[r.Code] = r.Rate
	}
	if _, ok := snapshot[domain.PivotCurrency]; !ok {
		snapshot[domain.PivotCurrency] = decimal.NewFromInt(1)
	}
	return snapshot, nil
}
