package mapping

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		Email:           d.Email,
		DefaultCurrency: d.DefaultCurrency,
		Timezone:        d.Timezone,
		Capital:         d.Capital,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Username:        m.Username,
		Email:           m.Email,
		DefaultCurrency: m.DefaultCurrency,
		Timezone:        m.Timezone,
		Capital:         m.Capital,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
