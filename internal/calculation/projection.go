package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// MaxProjectionYears bounds the annual projector.
const MaxProjectionYears = 50

// Project runs the annual compounding projection. It stops at the first year
// whose closing balance reaches the target; otherwise it emits
// MaxProjectionYears rows and reports OutcomeHorizonExhausted.
func Project(in domain.ProjectionInput) domain.ProjectionSeries {
	rows := make([]domain.ProjectionRow, 0, MaxProjectionYears)

	currentBalance := in.InitialBalance
	// The contribution stream grows unrounded; only each year's draw is rounded.
	currentContribution := in.Contribution
	growth := rounding.GrowthFactor(in.ContributionGrowthRatePct)
	year, age := in.StartYear, in.StartAge

	for i := 0; i < MaxProjectionYears; i++ {
		openingBalance := rounding.Unit(currentBalance)
		openingReturn := ApplyRate(openingBalance, in.TargetReturnRatePct)
		openingPlusProfit := openingBalance.Add(openingReturn)

		contribution := rounding.Unit(currentContribution)
		contributionReturn := ApplyRate(contribution, in.ContributionReturnRatePct)
		contributionPlusProfit := contribution.Add(contributionReturn)

		closingBalance := openingPlusProfit.Add(contributionPlusProfit)
		shortfall := rounding.Unit(in.TargetClosingBalance.Sub(closingBalance))

		rows = append(rows, domain.ProjectionRow{
			Year:                   year,
			Age:                    age,
			OpeningBalance:         openingBalance,
			OpeningReturn:          openingReturn,
			OpeningPlusProfit:      openingPlusProfit,
			Contribution:           contribution,
			ContributionReturn:     contributionReturn,
			ContributionPlusProfit: contributionPlusProfit,
			ClosingBalance:         closingBalance,
			Shortfall:              shortfall,
		})

		if closingBalance.GreaterThanOrEqual(in.TargetClosingBalance) {
			return domain.ProjectionSeries{Rows: rows, Outcome: domain.OutcomeGoalReached}
		}

		currentBalance = closingBalance
		currentContribution = currentContribution.Mul(growth)
		year++
		age++
	}

	return domain.ProjectionSeries{Rows: rows, Outcome: domain.OutcomeHorizonExhausted}
}

// TotalContributed sums the contributions drawn across a series.
func TotalContributed(s domain.ProjectionSeries) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Rows {
		total = total.Add(r.Contribution)
	}
	return total
}
