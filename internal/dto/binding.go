package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations installs the request-level validations that the
// standard tag set cannot express. Call once at startup with gin's binding
// validator engine.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("txnkind", func(fl validator.FieldLevel) bool {
		return domain.TransactionKind(fl.Field().String()).IsValid()
	})
}
