package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpgo/fire-projector/internal/domain"
)

const (
	DefaultDisplayUnit    = "crore"
	DefaultCurrencySymbol = "₹"
)

// ErrInvalidParameter is returned when a parameter cannot be parsed as a number.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterField describes one numeric input of the calculator form.
// Percent fields are entered as percentages ("12.5") and stored as fractions.
type ParameterField struct {
	Key     string
	Label   string
	Percent bool
	get     func(*domain.ProjectionParameters) float64
	set     func(*domain.ProjectionParameters, float64)
}

// Value reads the field from params in form units.
func (f ParameterField) Value(p *domain.ProjectionParameters) float64 {
	v := f.get(p)
	if f.Percent {
		return v * 100
	}
	return v
}

// AdjustForInflationKey is the form key of the inflation checkbox.
const AdjustForInflationKey = "adjust_for_inflation"

// ParameterFields lists the numeric inputs in form order.
var ParameterFields = []ParameterField{
	{Key: "initial_portfolio", Label: "Current portfolio value",
		get: func(p *domain.ProjectionParameters) float64 { return p.InitialPortfolio },
		set: func(p *domain.ProjectionParameters, v float64) { p.InitialPortfolio = v }},
	{Key: "initial_income", Label: "Annual gross income",
		get: func(p *domain.ProjectionParameters) float64 { return p.InitialIncome },
		set: func(p *domain.ProjectionParameters, v float64) { p.InitialIncome = v }},
	{Key: "initial_post_tax_income", Label: "Annual post-tax income",
		get: func(p *domain.ProjectionParameters) float64 { return p.InitialPostTaxIncome },
		set: func(p *domain.ProjectionParameters, v float64) { p.InitialPostTaxIncome = v }},
	{Key: "initial_expenses", Label: "Annual expenses",
		get: func(p *domain.ProjectionParameters) float64 { return p.InitialExpenses },
		set: func(p *domain.ProjectionParameters, v float64) { p.InitialExpenses = v }},
	{Key: "income_growth_rate", Label: "Income growth (%)", Percent: true,
		get: func(p *domain.ProjectionParameters) float64 { return p.IncomeGrowthRate },
		set: func(p *domain.ProjectionParameters, v float64) { p.IncomeGrowthRate = v }},
	{Key: "expense_growth_rate", Label: "Expense growth (%)", Percent: true,
		get: func(p *domain.ProjectionParameters) float64 { return p.ExpenseGrowthRate },
		set: func(p *domain.ProjectionParameters, v float64) { p.ExpenseGrowthRate = v }},
	{Key: "xirr", Label: "Expected return, XIRR (%)", Percent: true,
		get: func(p *domain.ProjectionParameters) float64 { return p.XIRR },
		set: func(p *domain.ProjectionParameters, v float64) { p.XIRR = v }},
	{Key: "inflation_rate", Label: "Inflation (%)", Percent: true,
		get: func(p *domain.ProjectionParameters) float64 { return p.InflationRate },
		set: func(p *domain.ProjectionParameters, v float64) { p.InflationRate = v }},
	{Key: "target_value", Label: "Target net worth",
		get: func(p *domain.ProjectionParameters) float64 { return p.TargetValue },
		set: func(p *domain.ProjectionParameters, v float64) { p.TargetValue = v }},
}

// ParseParameters converts text form values into typed parameters.
// Fields missing from values keep their value from defaults. The inflation
// checkbox is only read when present, unless values carries any numeric
// field, in which case an absent checkbox means unchecked (browser semantics).
func ParseParameters(values url.Values, defaults domain.ProjectionParameters) (domain.ProjectionParameters, error) {
	params := defaults
	submitted := false

	for _, f := range ParameterFields {
		raw, ok := values[f.Key]
		if !ok || len(raw) == 0 {
			continue
		}
		submitted = true
		v, err := parseNumber(raw[0])
		if err != nil {
			return defaults, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, f.Key, err)
		}
		if f.Percent {
			v /= 100
		}
		f.set(&params, v)
	}

	if raw, ok := values[AdjustForInflationKey]; ok && len(raw) > 0 {
		params.AdjustForInflation = ParseCheckbox(raw[0])
	} else if submitted {
		params.AdjustForInflation = false
	}

	return params, nil
}

// ParseCheckbox interprets an HTML checkbox or flag value.
func ParseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes", "y":
		return true
	}
	return false
}

// IsKnownDisplayUnit reports whether name is a supported display unit.
func IsKnownDisplayUnit(name string) bool {
	_, ok := domain.LookupDisplayUnit(name)
	return ok
}

// parseNumber accepts plain and grouped numbers ("1,20,000", "12_000").
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}
