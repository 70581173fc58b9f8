package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse defines the data returned for a single cached rate.
type RateResponse struct {
	Code            string          `json:"code"`
	Rate            decimal.Decimal `json:"rate"`
	LastRefreshedAt time.Time       `json:"lastRefreshedAt,omitempty"`
}

// ToRateResponse converts a domain.Rate to a RateResponse DTO
func ToRateResponse(rate *domain.Rate) RateResponse {
	return RateResponse{
		Code:            rate.Code,
		Rate:            rate.Rate,
		LastRefreshedAt: rate.LastRefreshedAt,
	}
}
