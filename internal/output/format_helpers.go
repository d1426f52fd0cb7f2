package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rpgo/fire-projector/internal/domain"
	money "github.com/rpgo/fire-projector/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.125) as a percentage ("12.50%").
func FormatRate(rate float64) string {
	if !isFinite(rate) {
		return strconv.FormatFloat(rate, 'f', -1, 64)
	}
	return FormatPercentage(decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)))
}

// FormatAmount renders an amount in the configured display unit, e.g.
// "₹826.82 Cr". Whole-unit display ("none") shows no decimals.
// Rescaling is presentation only.
func FormatAmount(amount float64, display domain.DisplaySettings) string {
	if !isFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	unit, ok := domain.LookupDisplayUnit(display.Unit)
	if !ok {
		unit, _ = domain.LookupDisplayUnit("none")
	}
	places := 2
	if unit.Divisor == 1 {
		places = 0
	}

	scaled := unit.Scale(amount)
	var s string
	if digits, ok := formatLocalized(math.Abs(scaled), places, display.Locale); ok {
		if scaled < 0 && strings.Trim(digits, "0.,") != "" {
			s = "-"
		}
		s += display.CurrencySymbol + digits
	} else {
		s = money.NewMoney(scaled).Format(display.CurrencySymbol, int32(places))
	}
	return withUnitLabel(s, unit)
}

// FormatMoney renders a decimal amount in the configured display unit,
// matching FormatAmount's layout.
func FormatMoney(amount decimal.Decimal, display domain.DisplaySettings) string {
	unit, ok := domain.LookupDisplayUnit(display.Unit)
	if !ok {
		unit, _ = domain.LookupDisplayUnit("none")
	}
	m := money.NewMoneyFromDecimal(amount)
	places := int32(2)
	if unit.Divisor == 1 {
		m = m.Round()
		places = 0
	} else {
		m = m.InUnits(unit.Divisor)
	}
	return withUnitLabel(m.Format(display.CurrencySymbol, places), unit)
}

// ScaleForDisplay converts an amount into the display unit without formatting.
func ScaleForDisplay(amount float64, display domain.DisplaySettings) float64 {
	unit, ok := domain.LookupDisplayUnit(display.Unit)
	if !ok {
		return amount
	}
	return unit.Scale(amount)
}

// reachedTargetAt reports whether snapshot i is the year the projection
// stopped on the target. Rounded reported values can touch the target a
// year early, so only the final row of a converged run qualifies.
func reachedTargetAt(result domain.ProjectionResult, i int) bool {
	return result.Converged && i == len(result.Snapshots)-1
}

func withUnitLabel(s string, unit domain.DisplayUnit) string {
	if unit.Label == "" {
		return s
	}
	return s + " " + unit.Label
}

// formatLocalized groups digits with the locale's separators. It reports
// false when no usable locale is set.
func formatLocalized(v float64, places int, locale string) (string, bool) {
	if locale == "" {
		return "", false
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}
	p := message.NewPrinter(tag)
	return p.Sprintf(fmt.Sprintf("%%.%df", places), v), true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// floatToString renders a reported value for machine-readable outputs.
func floatToString(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
