package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// DefaultMaxMonths is the goal-seeking horizon (50 years).
const DefaultMaxMonths = domain.MaxGoalSeekMonths

const monthsPerYear = 12

// yearAccumulator carries the unrounded totals of the simulation year in
// progress. An accumulator is either accumulating (open) or flushed.
type yearAccumulator struct {
	open                bool
	index               int // years since simulation start
	startBalance        decimal.Decimal
	totalReturn         decimal.Decimal
	totalContribution   decimal.Decimal
	contributionReturns decimal.Decimal
}

func (a *yearAccumulator) start(index int, balance decimal.Decimal) {
	*a = yearAccumulator{
		open:                true,
		index:               index,
		startBalance:        balance,
		totalReturn:         decimal.Zero,
		totalContribution:   decimal.Zero,
		contributionReturns: decimal.Zero,
	}
}

// flush closes the year and renders its row. Every field is rounded
// independently from the unrounded totals.
func (a *yearAccumulator) flush(in domain.GoalSeekInput, closing decimal.Decimal) domain.ProjectionRow {
	a.open = false
	closingBalance := rounding.Unit(closing)
	return domain.ProjectionRow{
		Year:                   in.StartYear + a.index,
		Age:                    in.StartAge + a.index,
		OpeningBalance:         rounding.Unit(a.startBalance),
		OpeningReturn:          rounding.Unit(a.totalReturn),
		OpeningPlusProfit:      rounding.Unit(a.startBalance.Add(a.totalReturn)),
		Contribution:           rounding.Unit(a.totalContribution),
		ContributionReturn:     rounding.Unit(a.contributionReturns),
		ContributionPlusProfit: rounding.Unit(a.totalContribution.Add(a.contributionReturns)),
		ClosingBalance:         closingBalance,
		Shortfall:              rounding.Unit(in.RequiredAsset.Sub(closingBalance)),
	}
}

// SimulateToGoal compounds the asset monthly at a fixed rate, paying the
// monthly expense and adding the monthly contribution, until the asset reaches
// RequiredAsset, is depleted, or the horizon runs out. Months are folded into
// one row per 12-month simulation year. It returns the series and the number
// of months simulated.
//
// Terminal conditions are checked each month in priority order: goal,
// depletion, horizon.
func SimulateToGoal(in domain.GoalSeekInput) (domain.ProjectionSeries, int) {
	maxMonths := in.MaxMonths
	if maxMonths <= 0 || maxMonths > DefaultMaxMonths {
		maxMonths = DefaultMaxMonths
	}

	var (
		rows   = make([]domain.ProjectionRow, 0, maxMonths/monthsPerYear+1)
		acc    yearAccumulator
		asset  = in.CurrentAsset
		months = 0
	)
	// Return credited to the year's contributions. It is reported, not
	// compounded into the asset a second time.
	contributionReturn := in.MonthlyContribution.Mul(in.MonthlyReturnRate)

	for {
		if asset.GreaterThanOrEqual(in.RequiredAsset) {
			if acc.open {
				rows = append(rows, acc.flush(in, asset))
			}
			return domain.ProjectionSeries{Rows: rows, Outcome: domain.OutcomeGoalReached, Months: months}, months
		}
		if months == maxMonths {
			if acc.open {
				rows = append(rows, acc.flush(in, asset))
			}
			return domain.ProjectionSeries{Rows: rows, Outcome: domain.OutcomeHorizonExhausted, Months: months}, months
		}

		yearIndex := months / monthsPerYear
		if acc.open && acc.index != yearIndex {
			rows = append(rows, acc.flush(in, asset))
		}
		if !acc.open {
			acc.start(yearIndex, asset)
		}

		monthlyReturn := asset.Mul(in.MonthlyReturnRate)
		acc.totalReturn = acc.totalReturn.Add(monthlyReturn)
		acc.totalContribution = acc.totalContribution.Add(in.MonthlyContribution)
		acc.contributionReturns = acc.contributionReturns.Add(contributionReturn)

		asset = asset.Add(monthlyReturn).Sub(in.MonthlyExpense).Add(in.MonthlyContribution)
		months++

		if !asset.IsPositive() {
			rows = append(rows, acc.flush(in, asset))
			return domain.ProjectionSeries{Rows: rows, Outcome: domain.OutcomeDepleted, Months: months}, months
		}
	}
}
