package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountDisplayPlaces is the number of decimal places used when rendering amounts.
const AmountDisplayPlaces = 2

// Amount is a monetary value in credits.
type Amount = decimal.Decimal

// ParseAmount parses a decimal string like "150.00".
// Returns ErrInvalidAmount (validation class) for empty or non-numeric input.
func ParseAmount(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, ValidationError(ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ValidationError(errors.Join(ErrInvalidAmount, err))
	}

	return amount, nil
}

// MustAmount parses s and panics on failure. Intended for constants in tests and seed data.
func MustAmount(s string) Amount {
	amount, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}

	return amount
}

// FormatAmount renders an amount with two decimal places, e.g. "350.00".
func FormatAmount(a Amount) string {
	return a.StringFixed(AmountDisplayPlaces)
}
