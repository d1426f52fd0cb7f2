package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/fire-projector/internal/domain"
	money "github.com/rpgo/fire-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// Summarize derives headline metrics from a projection result.
func Summarize(params domain.ProjectionParameters, result *domain.ProjectionResult) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		Rates: CalculateEffectiveRates(params),
	}
	if result == nil || len(result.Snapshots) == 0 {
		return summary
	}
	summary.YearsToTarget = result.YearsToTarget()
	summary.Converged = result.Converged

	if !snapshotsFinite(result.Snapshots) || !isFinite(params.InitialPortfolio) {
		summary.NonFinite = true
		return summary
	}

	final := result.Final()
	summary.FinalPortfolio = decimal.NewFromFloat(final.Portfolio)
	summary.FinalIncome = decimal.NewFromFloat(final.Income)
	summary.FinalExpenses = decimal.NewFromFloat(final.Expenses)

	// Year 0 carries no investment, so summing every row is safe.
	totalInvested := money.Zero()
	for _, s := range result.Snapshots {
		investment := money.NewMoney(s.Investment)
		totalInvested = totalInvested.Add(investment)

		marketGain := money.NewMoney(s.Growth).Sub(investment)
		if summary.CrossoverYear == 0 && s.Year > 0 && investment.IsPositive() && marketGain.GreaterThanOrEqual(investment) {
			summary.CrossoverYear = s.Year
		}
	}
	summary.TotalInvested = totalInvested.Decimal
	summary.TotalMarketGains = money.NewMoneyFromDecimal(summary.FinalPortfolio).
		Sub(money.NewMoney(params.InitialPortfolio)).
		Sub(totalInvested).Decimal

	if !summary.FinalExpenses.IsZero() {
		summary.ExpenseMultiple = summary.FinalPortfolio.DivRound(summary.FinalExpenses, 2)
	}
	return summary
}

// GenerateAssumptions creates the assumptions list rendered alongside a projection.
func GenerateAssumptions(params domain.ProjectionParameters) []string {
	rates := CalculateEffectiveRates(params)
	assumptions := []string{
		fmt.Sprintf("Expected return (XIRR): %s annually", percent(params.XIRR)),
		fmt.Sprintf("Post-tax income growth: %s annually", percent(params.IncomeGrowthRate)),
		fmt.Sprintf("Expense growth: %s annually", percent(params.ExpenseGrowthRate)),
	}
	if params.AdjustForInflation {
		assumptions = append(assumptions,
			fmt.Sprintf("Inflation: %s annually, values shown in today's money", percent(params.InflationRate)),
			fmt.Sprintf("Real return used: %s, real income growth used: %s", percent(rates.Return), percent(rates.IncomeGrowth)),
			"Expense growth is not inflation adjusted",
		)
	} else {
		assumptions = append(assumptions, "Nominal projection (no inflation adjustment)")
	}
	assumptions = append(assumptions,
		"Net investment each year is post-tax income minus expenses and may be negative",
		"Gross income is informational only and does not affect the projection",
	)
	return assumptions
}

func percent(rate float64) string {
	if !isFinite(rate) {
		return fmt.Sprintf("%v", rate)
	}
	return decimal.NewFromFloat(rate).Mul(decimalHundred).StringFixed(2) + "%"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func snapshotsFinite(snapshots []domain.YearSnapshot) bool {
	for _, s := range snapshots {
		for _, v := range []float64{s.Portfolio, s.Growth, s.Investment, s.Expenses, s.Income} {
			if !isFinite(v) {
				return false
			}
		}
	}
	return true
}
