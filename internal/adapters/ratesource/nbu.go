// Package ratesource contains clients for external exchange-rate authorities.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NBUClient fetches daily quotes from the National Bank of Ukraine statistics
// API. Quotes are denominated in UAH, the bank's local pivot; normalization to
// the USD pivot is the rate service's job.
type NBUClient struct {
	baseURL    string
	localPivot string
	httpClient *http.Client
}

// NewNBUClient creates a client for the NBU exchange endpoint. The timeout
// bounds the whole fetch; an expired fetch aborts the current refresh cycle
// only and never affects in-flight ledger requests.
func NewNBUClient(baseURL string, timeout time.Duration) *NBUClient {
	return &NBUClient{
		baseURL:    baseURL,
		localPivot: "UAH",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LocalPivot returns the currency the NBU quotes are denominated in.
func (c *NBUClient) LocalPivot() string {
	return c.localPivot
}

// nbuQuote is one element of the NBU response. Rate is kept as json.Number so
// a single malformed value can be skipped without failing the whole batch.
type nbuQuote struct {
	CC   string      `json:"cc"`
	Rate json.Number `json:"rate"`
}

// FetchQuotes performs one GET against the NBU API and returns the parsed
// quote list. Quotes with a missing code or unparseable rate are dropped.
func (c *NBUClient) FetchQuotes(ctx context.Context) ([]domain.RateQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrRateSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrRateSourceUnavailable, resp.StatusCode)
	}

	var raw []nbuQuote
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrRateSourceMalformed, err)
	}

	quotes := make([]domain.RateQuote, 0, len(raw))
	for _, q := range raw {
		code := strings.ToUpper(strings.TrimSpace(q.CC))
		if code == "" {
			continue
		}
		rate, err := decimal.NewFromString(q.Rate.String())
		if err != nil {
			continue
		}
		quotes = append(quotes, domain.RateQuote{Code: code, Rate: rate})
	}
	return quotes, nil
}
