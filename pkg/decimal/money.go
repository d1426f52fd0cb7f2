package decimal

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64.
// Callers must pass a finite value.
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds to whole currency units, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(0)}
}

// RoundTo rounds to the given number of decimal places.
func (m Money) RoundTo(places int32) Money {
	return Money{m.Decimal.Round(places)}
}

// InUnits expresses the amount in a display denomination, e.g. divisor
// 10,000,000 for crore. A zero divisor leaves the amount unchanged.
func (m Money) InUnits(divisor float64) Money {
	if divisor == 0 {
		return m
	}
	return Money{m.Decimal.Div(decimal.NewFromFloat(divisor))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThanOrEqual checks if this amount is greater than or equal to another
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.Decimal.GreaterThanOrEqual(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// Format renders the amount with a currency symbol, thousands separators
// and the given number of decimals, e.g. "-₹1,234.50". An amount that
// rounds to zero carries no sign.
func (m Money) Format(symbol string, places int32) string {
	r := m.RoundTo(places)
	var b strings.Builder
	if r.LessThan(Zero()) {
		b.WriteString("-")
	}
	b.WriteString(symbol)
	b.WriteString(groupDigits(r.Decimal.Abs().StringFixed(places)))
	return b.String()
}

// groupDigits inserts thousands separators into a plain decimal string of
// any magnitude.
func groupDigits(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return s
	}
	grouped := humanize.BigComma(n)
	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}
