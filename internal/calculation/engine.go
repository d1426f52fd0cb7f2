package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/fire-projector/internal/domain"
)

// DefaultMaxYears bounds the projection loop when no explicit limit is set.
const DefaultMaxYears = 200

// ErrDidNotConverge is returned when the portfolio does not reach the target
// within the configured number of years.
var ErrDidNotConverge = errors.New("projection did not reach target")

// ProjectionEngine runs the year-by-year compounding projection.
// It holds no per-run state, so a single engine may be reused freely.
type ProjectionEngine struct {
	MaxYears int
	// Round is applied to every reported value after year 0. The running
	// portfolio is never rounded.
	Round  func(float64) float64
	Debug  bool
	Logger Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		MaxYears: DefaultMaxYears,
		Round:    RoundHalfUp,
		Logger:   NopLogger{},
	}
}

// NewProjectionEngineWithMaxYears creates an engine with an explicit year bound.
// Values below 1 fall back to DefaultMaxYears.
func NewProjectionEngineWithMaxYears(maxYears int) *ProjectionEngine {
	pe := NewProjectionEngine()
	if maxYears > 0 {
		pe.MaxYears = maxYears
	}
	return pe
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// CalculateEffectiveRates applies the inflation toggle. Expense growth is
// passed through unchanged in both modes.
func CalculateEffectiveRates(params domain.ProjectionParameters) domain.EffectiveRates {
	rates := domain.EffectiveRates{
		Return:        params.XIRR,
		IncomeGrowth:  params.IncomeGrowthRate,
		ExpenseGrowth: params.ExpenseGrowthRate,
	}
	if params.AdjustForInflation {
		rates.Return = params.XIRR - params.InflationRate
		rates.IncomeGrowth = (1+params.IncomeGrowthRate)/(1+params.InflationRate) - 1
	}
	return rates
}

// Project simulates the portfolio from year 0 until it reaches TargetValue.
//
// The returned result is always non-nil. When the year bound is hit the
// partial trajectory is returned together with an error wrapping
// ErrDidNotConverge; when ctx is cancelled the error wraps ctx.Err().
// Non-finite arithmetic is propagated as is: a NaN portfolio ends the loop
// without an error and the result reports StopNonFinite.
func (pe *ProjectionEngine) Project(ctx context.Context, params domain.ProjectionParameters) (*domain.ProjectionResult, error) {
	maxYears := pe.MaxYears
	if maxYears <= 0 {
		maxYears = DefaultMaxYears
	}
	round := pe.Round
	if round == nil {
		round = RoundHalfUp
	}
	logger := pe.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	rates := CalculateEffectiveRates(params)
	if pe.Debug {
		logger.Debugf("effective return rate: %.6f", rates.Return)
		logger.Debugf("effective income growth rate: %.6f", rates.IncomeGrowth)
		logger.Debugf("expense growth rate: %.6f", rates.ExpenseGrowth)
	}

	result := &domain.ProjectionResult{
		Snapshots: []domain.YearSnapshot{{
			Year:      0,
			Portfolio: params.InitialPortfolio,
			Expenses:  params.InitialExpenses,
			Income:    params.InitialPostTaxIncome,
		}},
		MaxYears: maxYears,
	}

	portfolio := params.InitialPortfolio
	years := 0
	for portfolio < params.TargetValue {
		if err := ctx.Err(); err != nil {
			result.StopReason = domain.StopCancelled
			return result, fmt.Errorf("projection cancelled at year %d: %w", years, err)
		}
		if years >= maxYears {
			result.StopReason = domain.StopMaxYears
			logger.Warnf("portfolio %.0f still below target %.0f after %d years", portfolio, params.TargetValue, years)
			return result, fmt.Errorf("%w: portfolio below %.0f after %d years", ErrDidNotConverge, params.TargetValue, years)
		}

		postTaxIncome := params.InitialPostTaxIncome * math.Pow(1+rates.IncomeGrowth, float64(years))
		expenses := params.InitialExpenses * math.Pow(1+rates.ExpenseGrowth, float64(years))
		investment := postTaxIncome - expenses
		previous := portfolio
		portfolio = portfolio*(1+rates.Return) + investment
		years++

		result.Snapshots = append(result.Snapshots, domain.YearSnapshot{
			Year:       years,
			Portfolio:  round(portfolio),
			Growth:     round(portfolio - previous),
			Investment: round(investment),
			Expenses:   round(expenses),
			Income:     round(postTaxIncome),
		})

		if pe.Debug {
			logger.Debugf("year %d: portfolio=%.2f investment=%.2f", years, portfolio, investment)
		}
	}

	if portfolio >= params.TargetValue {
		result.Converged = true
		result.StopReason = domain.StopTargetReached
	} else {
		// Only reachable when the comparison itself is false, i.e. NaN.
		result.StopReason = domain.StopNonFinite
		logger.Warnf("projection stopped at year %d on a non-finite value", years)
	}
	return result, nil
}
