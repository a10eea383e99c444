// Package currency handles conversion between expense currencies and a
// trip's base currency. Rates are fixed per expense at entry time, never
// fetched live, and rounding is half-up to two decimals everywhere so
// repeated sums stay stable.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRate parses a fixed exchange rate such as "1.0842". Rates must be
// strictly positive.
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid exchange rate %q: %w", s, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return rate, nil
}

// Normalize converts amount minor units at the given rate into minor units
// of the base currency, rounded half-up. A rate of 1 is the identity.
func Normalize(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

// ValidCode reports whether code looks like an ISO 4217 currency code.
// Full registry validation belongs to the client; the server only rejects
// obviously malformed input.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Major renders minor units as a major-unit string, e.g. 123456 -> "1234.56".
func Major(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-2).StringFixed(2)
}
