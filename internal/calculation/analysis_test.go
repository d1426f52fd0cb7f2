package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_ReferenceScenario(t *testing.T) {
	params := referenceParams()
	result, err := NewProjectionEngine().Project(context.Background(), params)
	require.NoError(t, err)

	summary := Summarize(params, result)

	assert.Equal(t, 22, summary.YearsToTarget)
	assert.True(t, summary.Converged)
	assert.False(t, summary.NonFinite)
	assert.True(t, summary.FinalPortfolio.Equal(decimal.NewFromInt(8268220499)), "final portfolio %s", summary.FinalPortfolio)
	assert.True(t, summary.TotalInvested.Equal(decimal.NewFromInt(595792735)), "total invested %s", summary.TotalInvested)
	assert.True(t, summary.TotalMarketGains.Equal(decimal.NewFromInt(7652427764)), "market gains %s", summary.TotalMarketGains)
	assert.Equal(t, 2, summary.CrossoverYear)
	assert.Equal(t, "2473.18", summary.ExpenseMultiple.StringFixed(2))
	assert.Equal(t, params.XIRR, summary.Rates.Return)
}

func TestSummarize_MarketGainsIdentity(t *testing.T) {
	params := referenceParams()
	params.AdjustForInflation = true
	result, err := NewProjectionEngine().Project(context.Background(), params)
	require.NoError(t, err)

	summary := Summarize(params, result)
	recomposed := decimal.NewFromFloat(params.InitialPortfolio).Add(summary.TotalInvested).Add(summary.TotalMarketGains)
	assert.True(t, recomposed.Equal(summary.FinalPortfolio))
}

func TestSummarize_TotalsAreExactDecimalSums(t *testing.T) {
	result := &domain.ProjectionResult{
		Converged: true,
		Snapshots: []domain.YearSnapshot{
			{Year: 0, Portfolio: 1, Expenses: 1, Income: 1},
			{Year: 1, Portfolio: 1.2, Growth: 0.1, Investment: 0.1, Expenses: 1, Income: 1.1},
			{Year: 2, Portfolio: 1.7, Growth: 0.5, Investment: 0.2, Expenses: 1, Income: 1.2},
		},
	}
	summary := Summarize(domain.ProjectionParameters{InitialPortfolio: 1}, result)
	assert.Equal(t, "0.3", summary.TotalInvested.String())
	assert.Equal(t, "0.4", summary.TotalMarketGains.String())
	assert.Equal(t, 2, summary.CrossoverYear)
}

func TestSummarize_SingleSnapshot(t *testing.T) {
	params := referenceParams()
	params.TargetValue = 1
	result, err := NewProjectionEngine().Project(context.Background(), params)
	require.NoError(t, err)

	summary := Summarize(params, result)
	assert.Equal(t, 0, summary.YearsToTarget)
	assert.Equal(t, 0, summary.CrossoverYear)
	assert.True(t, summary.TotalInvested.IsZero())
	assert.True(t, summary.TotalMarketGains.IsZero())
}

func TestSummarize_NoCrossoverWhenInvestmentNegative(t *testing.T) {
	result := &domain.ProjectionResult{
		Converged: true,
		Snapshots: []domain.YearSnapshot{
			{Year: 0, Portfolio: 100, Expenses: 20, Income: 10},
			{Year: 1, Portfolio: 120, Growth: 20, Investment: -10, Expenses: 20, Income: 10},
		},
	}
	summary := Summarize(domain.ProjectionParameters{InitialPortfolio: 100}, result)
	assert.Equal(t, 0, summary.CrossoverYear)
	assert.Equal(t, "6.00", summary.ExpenseMultiple.StringFixed(2))
}

func TestSummarize_NonFinite(t *testing.T) {
	result := &domain.ProjectionResult{
		Snapshots: []domain.YearSnapshot{
			{Year: 0, Portfolio: 10},
			{Year: 1, Portfolio: math.NaN(), Growth: math.NaN()},
		},
		StopReason: domain.StopNonFinite,
	}
	summary := Summarize(domain.ProjectionParameters{InitialPortfolio: 10}, result)
	assert.True(t, summary.NonFinite)
	assert.Equal(t, 1, summary.YearsToTarget)
	assert.True(t, summary.FinalPortfolio.IsZero())
}

func TestSummarize_NilResult(t *testing.T) {
	summary := Summarize(referenceParams(), nil)
	assert.Equal(t, 0, summary.YearsToTarget)
	assert.Equal(t, 0.05, summary.Rates.ExpenseGrowth)
}

func TestGenerateAssumptions(t *testing.T) {
	params := referenceParams()
	nominal := GenerateAssumptions(params)
	assert.Contains(t, nominal, "Expected return (XIRR): 25.00% annually")
	assert.Contains(t, nominal, "Nominal projection (no inflation adjustment)")

	params.AdjustForInflation = true
	adjusted := GenerateAssumptions(params)
	assert.Contains(t, adjusted, "Inflation: 6.00% annually, values shown in today's money")
	assert.Contains(t, adjusted, "Expense growth is not inflation adjusted")
}
