package config

import (
	"errors"
	"net/url"
	"testing"

	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameters_FullForm(t *testing.T) {
	values := url.Values{
		"initial_portfolio":       {"2,00,00,000"},
		"initial_income":          {"10000000"},
		"initial_post_tax_income": {"6500000"},
		"initial_expenses":        {" 1200000 "},
		"income_growth_rate":      {"12.5"},
		"expense_growth_rate":     {"5"},
		"xirr":                    {"25"},
		"inflation_rate":          {"6"},
		"target_value":            {"8000000000"},
		"adjust_for_inflation":    {"on"},
	}

	params, err := ParseParameters(values, domain.ProjectionParameters{})
	require.NoError(t, err)
	assert.Equal(t, 20000000.0, params.InitialPortfolio)
	assert.Equal(t, 10000000.0, params.InitialIncome)
	assert.Equal(t, 1200000.0, params.InitialExpenses)
	assert.Equal(t, 0.125, params.IncomeGrowthRate)
	assert.Equal(t, 0.05, params.ExpenseGrowthRate)
	assert.Equal(t, 0.25, params.XIRR)
	assert.Equal(t, 0.06, params.InflationRate)
	assert.True(t, params.AdjustForInflation)
}

func TestParseParameters_KeepsDefaultsForMissingFields(t *testing.T) {
	defaults := NewInputParser().CreateExampleConfiguration().Parameters
	defaults.AdjustForInflation = true

	params, err := ParseParameters(url.Values{}, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, params)

	params, err = ParseParameters(url.Values{"target_value": {"1000"}}, defaults)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, params.TargetValue)
	assert.Equal(t, defaults.XIRR, params.XIRR)
	assert.False(t, params.AdjustForInflation, "an unchecked checkbox is absent from a submitted form")
}

func TestParseParameters_InvalidNumber(t *testing.T) {
	_, err := ParseParameters(url.Values{"xirr": {"twelve"}}, domain.ProjectionParameters{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Contains(t, err.Error(), "xirr")

	_, err = ParseParameters(url.Values{"target_value": {"  "}}, domain.ProjectionParameters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty value")
}

func TestParseCheckbox(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "YES", " y "} {
		assert.True(t, ParseCheckbox(v), v)
	}
	for _, v := range []string{"off", "false", "0", "", "maybe"} {
		assert.False(t, ParseCheckbox(v), v)
	}
}

func TestParameterField_Value(t *testing.T) {
	params := domain.ProjectionParameters{XIRR: 0.25, TargetValue: 500}
	for _, f := range ParameterFields {
		switch f.Key {
		case "xirr":
			assert.Equal(t, 25.0, f.Value(&params))
		case "target_value":
			assert.Equal(t, 500.0, f.Value(&params))
		}
	}
	assert.Len(t, ParameterFields, 9)
}

func TestIsKnownDisplayUnit(t *testing.T) {
	assert.True(t, IsKnownDisplayUnit("crore"))
	assert.False(t, IsKnownDisplayUnit("furlong"))
}
