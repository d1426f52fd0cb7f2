package output

import (
	"math"
	"testing"

	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(12.3456)))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "12.50%", FormatRate(0.125))
	assert.Equal(t, "-1.50%", FormatRate(-0.015))
	assert.Equal(t, "NaN", FormatRate(math.NaN()))
}

func TestFormatAmount(t *testing.T) {
	crore := domain.DisplaySettings{Unit: "crore", CurrencySymbol: "₹"}
	none := domain.DisplaySettings{Unit: "none", CurrencySymbol: "$"}
	lakh := domain.DisplaySettings{Unit: "lakh", CurrencySymbol: "₹"}

	tests := []struct {
		name    string
		amount  float64
		display domain.DisplaySettings
		want    string
	}{
		{"crore", 8268220499, crore, "₹826.82 Cr"},
		{"crore grouping", 1.5e11, crore, "₹15,000.00 Cr"},
		{"lakh", 1200000, lakh, "₹12.00 L"},
		{"whole units grouped", 30300000, none, "$30,300,000"},
		{"negative", -10000, none, "-$10,000"},
		{"negative rounding to zero has no sign", -1, crore, "₹0.00 Cr"},
		{"beyond int64 still grouped", 1e20, domain.DisplaySettings{Unit: "none"}, "100,000,000,000,000,000,000"},
		{"unknown unit falls back to whole units", 1234, domain.DisplaySettings{Unit: "furlong"}, "1,234"},
		{"nan", math.NaN(), crore, "NaN"},
		{"inf", math.Inf(1), crore, "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.display))
		})
	}
}

func TestFormatAmountLocale(t *testing.T) {
	d := domain.DisplaySettings{Unit: "none", CurrencySymbol: "€", Locale: "de"}
	assert.Equal(t, "€1.234.567", FormatAmount(1234567, d))

	bad := domain.DisplaySettings{Unit: "none", CurrencySymbol: "$", Locale: "!!"}
	assert.Equal(t, "-$1,234,567", FormatAmount(-1234567, bad))
}

func TestFormatMoney(t *testing.T) {
	crore := domain.DisplaySettings{Unit: "crore", CurrencySymbol: "₹"}
	assert.Equal(t, "₹59.58 Cr", FormatMoney(decimal.NewFromInt(595792735), crore))
	assert.Equal(t, "-₹1.00 Cr", FormatMoney(decimal.NewFromInt(-10000000), crore))

	none := domain.DisplaySettings{Unit: "none", CurrencySymbol: "₹"}
	assert.Equal(t, "₹7,652,427,764", FormatMoney(decimal.NewFromInt(7652427764), none))
	assert.Equal(t, "₹123,456,789,012,345,678,901", FormatMoney(decimal.RequireFromString("123456789012345678901"), none))
}

func TestScaleForDisplay(t *testing.T) {
	assert.Equal(t, 3.03, ScaleForDisplay(30300000, domain.DisplaySettings{Unit: "crore"}))
	assert.Equal(t, 42.0, ScaleForDisplay(42, domain.DisplaySettings{Unit: "bogus"}))
}
