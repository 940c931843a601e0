// Package money parses and formats the fixed-point decimal amounts used
// throughout the wallet ledger: scale 2, magnitude fitting a 20-digit
// decimal, exact arithmetic (no binary-float intermediaries).
package money

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNotPositive     = errors.New("amount must be positive")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
	ErrTooLarge        = errors.New("amount exceeds maximum magnitude")
)

// Scale is the number of fractional digits every amount is rounded to.
const Scale = 2

// MaxDigits is the maximum number of integer digits spec.md §3 allows
// ("magnitude fitting in a 20-digit decimal").
const MaxDigits = 20

var maxMagnitude = decimal.New(1, MaxDigits) // 10^20, exclusive upper bound

// Parse accepts the lenient boundary representation spec.md §9
// describes (string or JSON number) and normalizes it to a
// scale-2 decimal.Decimal. It never rounds away precision silently:
// any input with more than two fractional digits is rejected rather
// than truncated.
func Parse(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		return parseString(v)
	case json.Number:
		return parseString(v.String())
	case float64:
		return parseString(decimal.NewFromFloat(v).String())
	case int:
		return normalize(decimal.NewFromInt(int64(v)))
	case int64:
		return normalize(decimal.NewFromInt(v))
	case decimal.Decimal:
		return parseString(v.String())
	case nil:
		return decimal.Decimal{}, ErrInvalidAmount
	default:
		return decimal.Decimal{}, ErrInvalidAmount
	}
}

func parseString(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if !parsed.IsZero() && parsed.Exponent() < -Scale {
		// More fractional digits than the exponent would hide once
		// rounded; reject rather than silently truncate.
		rounded := parsed.Round(Scale)
		if !rounded.Equal(parsed) {
			return decimal.Decimal{}, ErrTooManyDecimals
		}
	}
	return normalize(parsed)
}

func normalize(d decimal.Decimal) (decimal.Decimal, error) {
	rounded := d.Round(Scale)
	if rounded.Abs().Cmp(maxMagnitude) >= 0 {
		return decimal.Decimal{}, ErrTooLarge
	}
	return rounded, nil
}

// ParsePositive is Parse plus the amount > 0 check spec.md §3 (I6) and
// §4.3 preconditions require of every ledger-affecting amount.
func ParsePositive(raw any) (decimal.Decimal, error) {
	amount, err := Parse(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, ErrNotPositive
	}
	return amount, nil
}

// Format renders a decimal at the canonical scale, e.g. "50.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Zero is the canonical zero-balance value.
func Zero() decimal.Decimal {
	return decimal.NewFromInt(0)
}
