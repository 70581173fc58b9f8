package mapping

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/models"
)

// ToModelRate converts a domain Rate to a model Rate
func ToModelRate(d domain.Rate) models.Rate {
	return models.Rate{
		Code:            d.Code,
		Rate:            d.Rate,
		LastRefreshedAt: d.LastRefreshedAt,
	}
}

// ToDomainRate converts a model Rate to a domain Rate
func ToDomainRate(m models.Rate) domain.Rate {
	return domain.Rate{
		Code:            m.Code,
		Rate:            m.Rate,
		LastRefreshedAt: m.LastRefreshedAt,
	}
}

// ToDomainRateSlice converts a slice of model Rates to a slice of domain Rates
func ToDomainRateSlice(ms []models.Rate) []domain.Rate {
	ds := make([]domain.Rate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRate(m)
	}
	return ds
}
