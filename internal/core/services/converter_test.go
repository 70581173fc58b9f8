package services_test

import (
	"testing"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"UAH": decimal.NewFromInt(41),
		"EUR": decimal.RequireFromString("0.92"),
	}
}

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		amount   string
		kind     domain.TransactionKind
		expected string
	}{
		{
			name: "income keeps positive sign",
			from: "USD", to: "USD", amount: "100", kind: domain.Income,
			expected: "100.00",
		},
		{
			name: "expense negates",
			from: "USD", to: "USD", amount: "100", kind: domain.Expense,
			expected: "-100.00",
		},
		{
			name: "transfer keeps positive sign",
			from: "USD", to: "USD", amount: "100", kind: domain.Transfer,
			expected: "100.00",
		},
		{
			name: "same non-pivot code passes through without pivot round trip",
			from: "UAH", to: "UAH", amount: "123.45", kind: domain.Income,
			expected: "123.45",
		},
		{
			name: "UAH expense into USD",
			from: "UAH", to: "USD", amount: "410", kind: domain.Expense,
			expected: "-10.00",
		},
		{
			name: "USD into EUR",
			from: "USD", to: "EUR", amount: "100", kind: domain.Income,
			expected: "92.00",
		},
		{
			name: "cross rate EUR to UAH through pivot",
			from: "EUR", to: "UAH", amount: "1", kind: domain.Income,
			// 1 / 0.92 * 41 = 44.565... rounds to 44.57
			expected: "44.57",
		},
		{
			name: "rounds to two decimals",
			from: "USD", to: "UAH", amount: "0.0128", kind: domain.Income,
			// 0.0128 * 41 = 0.5248 -> 0.52
			expected: "0.52",
		},
		{
			name: "zero amount converts to zero",
			from: "UAH", to: "USD", amount: "0", kind: domain.Expense,
			expected: "0.00",
		},
		{
			name: "lowercase codes are normalized",
			from: "uah", to: "usd", amount: "41", kind: domain.Income,
			expected: "1.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got, err := services.ConvertAmount(snapshot(), tt.from, tt.to, amount, tt.kind)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestConvertAmount_HalfUpRounding(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"XTS": decimal.NewFromInt(8),
	}

	// 1 / 8 = 0.125, the midpoint between 0.12 and 0.13. Ties round away
	// from zero, never to even.
	got, err := services.ConvertAmount(rates, "XTS", "USD", decimal.NewFromInt(1), domain.Income)
	require.NoError(t, err)
	assert.Equal(t, "0.13", got.StringFixed(2))

	// Same magnitude as an expense rounds before negation: -0.13, not -0.12.
	got, err = services.ConvertAmount(rates, "XTS", "USD", decimal.NewFromInt(1), domain.Expense)
	require.NoError(t, err)
	assert.Equal(t, "-0.13", got.StringFixed(2))
}

func TestConvertAmount_UnknownCurrency(t *testing.T) {
	_, err := services.ConvertAmount(snapshot(), "ZZZ", "USD", decimal.NewFromInt(1), domain.Income)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)

	_, err = services.ConvertAmount(snapshot(), "USD", "ZZZ", decimal.NewFromInt(1), domain.Income)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
}

func TestConvertAmount_NonPositiveRateIsUnknown(t *testing.T) {
	rates := snapshot()
	rates["BAD"] = decimal.Zero

	_, err := services.ConvertAmount(rates, "BAD", "USD", decimal.NewFromInt(1), domain.Income)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
}

func TestConvertAmount_RoundTripWithinOneCent(t *testing.T) {
	amount := decimal.RequireFromString("250.00")

	toEUR, err := services.ConvertAmount(snapshot(), "USD", "EUR", amount, domain.Income)
	require.NoError(t, err)
	back, err := services.ConvertAmount(snapshot(), "EUR", "USD", toEUR, domain.Income)
	require.NoError(t, err)

	drift := back.Sub(amount).Abs()
	assert.True(t, drift.LessThanOrEqual(decimal.RequireFromString("0.01")),
		"round trip drifted by %s", drift.String())
}
