// Package roundup computes the savings delta of a spend: the amount is rounded
// up to the next whole currency unit and the difference goes to savings.
package roundup

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/internal/domain"
)

// MinorUnits is the number of fractional digits a currency amount may carry.
const MinorUnits = 2

// MaxAmount is the largest accepted spend. Its ceiling still fits the
// NUMERIC(14,2) money columns.
var MaxAmount = decimal.New(999_999_999_999, 0)

// Result is the outcome of rounding a single spend.
type Result struct {
	Original decimal.Decimal
	Rounded  decimal.Decimal
	Saved    decimal.Decimal
}

// Compute rounds amount up to the next whole unit. Saved is always in [0, 1).
func Compute(amount decimal.Decimal) (Result, error) {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return Result{}, domain.ErrInvalidAmount
	}
	rounded := amount.Ceil()
	return Result{
		Original: amount,
		Rounded:  rounded,
		Saved:    rounded.Sub(amount),
	}, nil
}

// ParseAmount converts user input such as "7.30" or "7,30" into a positive
// amount with at most MinorUnits fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return checkAmount(d)
}

// FromFloat rejects NaN and infinities before converting.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return checkAmount(decimal.NewFromFloat(f))
}

func checkAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if !d.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(MinorUnits)) || d.GreaterThan(MaxAmount) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d, nil
}
