package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateUserRequest defines the partial fields allowed on profile update.
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty" binding:"omitempty,min=3,max=64"`
	Email           *string `json:"email,omitempty" binding:"omitempty,email"`
	DefaultCurrency *string `json:"defaultCurrency,omitempty" binding:"omitempty,uppercase,min=3,max=16"`
	Timezone        *string `json:"timezone,omitempty" binding:"omitempty,max=64"`
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID          string          `json:"userID"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	DefaultCurrency string          `json:"defaultCurrency"`
	Timezone        string          `json:"timezone,omitempty"`
	Capital         decimal.Decimal `json:"capital"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Username:        user.Username,
		Email:           user.Email,
		DefaultCurrency: user.DefaultCurrency,
		Timezone:        user.Timezone,
		Capital:         user.Capital,
	}
}
