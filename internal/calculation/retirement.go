package calculation

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// ErrIncompleteInput is returned when the early-retirement figures are not
// sufficient to plan.
var ErrIncompleteInput = errors.New("incomplete early-retirement input")

// SignalMonthlyReturn is the monthly return assumed by the goal-seeking system.
var SignalMonthlyReturn = decimal.RequireFromString("0.02")

var twelve = decimal.NewFromInt(12)

// PlanEarlyRetirement compares three ways of funding retirement: spending
// down savings, living off a dividend portfolio, and compounding toward the
// dividend portfolio with the goal-seeking simulator.
//
// Ages and year counts are rounded to one decimal place, amounts to whole
// units.
func PlanEarlyRetirement(in domain.EarlyRetirementInput) (domain.EarlyRetirementPlan, error) {
	var plan domain.EarlyRetirementPlan

	retiringLater := in.RetirementAge > in.CurrentAge
	if retiringLater && !in.MonthlyIncome.IsPositive() {
		return plan, ErrIncompleteInput
	}
	if in.CurrentAsset.IsZero() || in.MonthlyExpense.IsZero() {
		return plan, ErrIncompleteInput
	}

	yearlyExpense := in.MonthlyExpense.Mul(twelve)
	yearsUntilRetirement := 0
	if retiringLater {
		yearsUntilRetirement = in.RetirementAge - in.CurrentAge
	}

	// Spending down savings.
	monthlySavings := decimal.Zero
	contribution := decimal.Zero
	if retiringLater {
		monthlySavings = in.MonthlyIncome.Sub(in.MonthlyExpense)
		contribution = rounding.Max(decimal.Zero, monthlySavings)
	}
	assetAtRetirement := in.CurrentAsset.Add(monthlySavings.Mul(twelve).Mul(decimal.NewFromInt(int64(yearsUntilRetirement))))
	yearsUntilDepletion := decimal.Zero
	if assetAtRetirement.IsPositive() {
		yearsUntilDepletion = assetAtRetirement.Div(yearlyExpense)
	}
	depletionAge := decimal.NewFromInt(int64(in.RetirementAge)).Add(yearsUntilDepletion)
	yearsNeedWork := rounding.Max(decimal.Zero, decimal.NewFromInt(int64(in.ExpectedLifespan)).Sub(depletionAge))

	plan.DepletionAge = depletionAge.Round(1)
	plan.YearsNeedWork = yearsNeedWork.Round(1)
	plan.TotalWorkNeeded = rounding.Unit(yearsNeedWork.Mul(yearlyExpense))
	plan.MonthlyExpense = rounding.Unit(in.MonthlyExpense)

	// Dividend portfolio.
	rate := in.Tier.Rate()
	requiredAsset := yearlyExpense.Div(rate)
	coverage := decimal.Zero
	if in.CurrentAsset.IsPositive() {
		coverage = in.CurrentAsset.Div(requiredAsset).Mul(decimal.NewFromInt(100))
	}
	plan.DividendRate = rate.Mul(decimal.NewFromInt(100)).Round(1)
	plan.RequiredAsset = rounding.Unit(requiredAsset)
	plan.Shortfall = rounding.Unit(requiredAsset.Sub(in.CurrentAsset))
	plan.CoveragePercent = coverage.Round(1)

	// Goal-seeking system.
	startYear := in.StartYear
	if startYear == 0 {
		startYear = nowFunc().Year()
	}
	series, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:        in.CurrentAsset,
		MonthlyExpense:      in.MonthlyExpense,
		MonthlyContribution: contribution,
		MonthlyReturnRate:   SignalMonthlyReturn,
		RequiredAsset:       requiredAsset,
		StartYear:           startYear,
		StartAge:            in.CurrentAge,
		MaxMonths:           DefaultMaxMonths,
	})
	yearsToGoal := decimal.NewFromInt(int64(months)).Div(twelve)
	goalAge := decimal.NewFromInt(int64(in.CurrentAge)).Add(yearsToGoal)

	plan.MonthlyContribution = rounding.Unit(contribution)
	plan.MonthsToGoal = months
	plan.YearsToGoal = yearsToGoal.Round(1)
	plan.GoalAge = goalAge.Round(1)
	plan.Surplus = rounding.Unit(requiredAsset.Mul(rate).Sub(yearlyExpense))
	plan.YearsSaved = decimal.NewFromInt(int64(in.RetirementAge)).Sub(goalAge).Round(1)
	plan.Simulation = series
	return plan, nil
}
