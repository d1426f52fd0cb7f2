package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StopReason records why the projection loop ended.
type StopReason string

const (
	// StopTargetReached means the portfolio reached or crossed the target value.
	StopTargetReached StopReason = "target_reached"
	// StopMaxYears means the year bound was hit before the target was crossed.
	StopMaxYears StopReason = "max_years"
	// StopNonFinite means the loop condition became false because the
	// portfolio stopped being a finite, comparable number.
	StopNonFinite StopReason = "non_finite"
	// StopCancelled means the caller's context ended the run.
	StopCancelled StopReason = "cancelled"
)

// ProjectionParameters is the immutable input of a single projection run.
// Rates are fractions (0.125 means 12.5%).
type ProjectionParameters struct {
	InitialPortfolio float64 `yaml:"initial_portfolio" json:"initial_portfolio"`
	// InitialIncome is informational only; the projection compounds
	// InitialPostTaxIncome.
	InitialIncome        float64 `yaml:"initial_income" json:"initial_income"`
	InitialExpenses      float64 `yaml:"initial_expenses" json:"initial_expenses"`
	IncomeGrowthRate     float64 `yaml:"income_growth_rate" json:"income_growth_rate"`
	ExpenseGrowthRate    float64 `yaml:"expense_growth_rate" json:"expense_growth_rate"`
	XIRR                 float64 `yaml:"xirr" json:"xirr"`
	TargetValue          float64 `yaml:"target_value" json:"target_value"`
	InitialPostTaxIncome float64 `yaml:"initial_post_tax_income" json:"initial_post_tax_income"`
	InflationRate        float64 `yaml:"inflation_rate" json:"inflation_rate"`
	AdjustForInflation   bool    `yaml:"adjust_for_inflation" json:"adjust_for_inflation"`
}

// YearSnapshot is one row of the projection. Values after year 0 are rounded
// to whole currency units for reporting.
type YearSnapshot struct {
	Year       int     `json:"year"`
	Portfolio  float64 `json:"portfolio"`
	Growth     float64 `json:"growth"`
	Investment float64 `json:"investment"`
	Expenses   float64 `json:"expenses"`
	Income     float64 `json:"income"`
}

// ProjectionResult is the ordered year-by-year trajectory produced by one run.
type ProjectionResult struct {
	Snapshots  []YearSnapshot `json:"snapshots"`
	Converged  bool           `json:"converged"`
	StopReason StopReason     `json:"stop_reason"`
	MaxYears   int            `json:"max_years"`
}

// Final returns the last snapshot of the trajectory.
func (r *ProjectionResult) Final() YearSnapshot {
	if r == nil || len(r.Snapshots) == 0 {
		return YearSnapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

// YearsToTarget returns the number of simulated years (the year of the last snapshot).
func (r *ProjectionResult) YearsToTarget() int {
	return r.Final().Year
}

// EffectiveRates are the rates actually used for compounding after the
// inflation toggle has been applied.
type EffectiveRates struct {
	Return        float64 `json:"return"`
	IncomeGrowth  float64 `json:"income_growth"`
	ExpenseGrowth float64 `json:"expense_growth"`
}

// ProjectionSummary provides key metrics derived from a projection
type ProjectionSummary struct {
	YearsToTarget    int             `json:"years_to_target"`
	Converged        bool            `json:"converged"`
	NonFinite        bool            `json:"non_finite"`
	FinalPortfolio   decimal.Decimal `json:"final_portfolio"`
	FinalIncome      decimal.Decimal `json:"final_income"`
	FinalExpenses    decimal.Decimal `json:"final_expenses"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalMarketGains decimal.Decimal `json:"total_market_gains"`
	CrossoverYear    int             `json:"crossover_year"` // first year market gains cover that year's investment
	ExpenseMultiple  decimal.Decimal `json:"expense_multiple"`
	Rates            EffectiveRates  `json:"effective_rates"`
}

// ProjectionReport bundles everything the output layer renders.
type ProjectionReport struct {
	Parameters  ProjectionParameters `json:"parameters"`
	Result      ProjectionResult     `json:"result"`
	Summary     ProjectionSummary    `json:"summary"`
	Assumptions []string             `json:"assumptions"`
	Display     DisplaySettings      `json:"display"`
	GeneratedAt time.Time            `json:"generated_at"`
}
