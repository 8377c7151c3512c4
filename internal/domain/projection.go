package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome classifies how a projection series terminated.
type Outcome string

const (
	// OutcomeGoalReached means the target balance was met or exceeded.
	OutcomeGoalReached Outcome = "goal_reached"
	// OutcomeHorizonExhausted means the maximum horizon elapsed first.
	OutcomeHorizonExhausted Outcome = "horizon_exhausted"
	// OutcomeDepleted means the simulated asset fell to zero or below.
	OutcomeDepleted Outcome = "depleted"
)

// ProjectionInput holds the scalars driving the annual compounding projector.
// All rate fields are percentages (20 means 20%).
type ProjectionInput struct {
	StartYear                 int             `yaml:"start_year" json:"start_year"`
	StartAge                  int             `yaml:"start_age" json:"start_age"`
	InitialBalance            decimal.Decimal `yaml:"initial_balance" json:"initial_balance"`
	TargetReturnRatePct       decimal.Decimal `yaml:"target_return_rate_pct" json:"target_return_rate_pct"`
	Contribution              decimal.Decimal `yaml:"contribution" json:"contribution"`
	ContributionReturnRatePct decimal.Decimal `yaml:"contribution_return_rate_pct" json:"contribution_return_rate_pct"`
	ContributionGrowthRatePct decimal.Decimal `yaml:"contribution_growth_rate_pct" json:"contribution_growth_rate_pct"`
	TargetClosingBalance      decimal.Decimal `yaml:"target_closing_balance" json:"target_closing_balance"`
}

// MaxGoalSeekMonths bounds the goal-seeking horizon (50 years).
const MaxGoalSeekMonths = 600

// GoalSeekInput holds the scalars driving the monthly goal-seeking simulator.
// MonthlyReturnRate is a fraction (0.02 means 2% per month). MaxMonths outside
// 1..MaxGoalSeekMonths means MaxGoalSeekMonths.
type GoalSeekInput struct {
	CurrentAsset        decimal.Decimal `yaml:"current_asset" json:"current_asset"`
	MonthlyExpense      decimal.Decimal `yaml:"monthly_expense" json:"monthly_expense"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	MonthlyReturnRate   decimal.Decimal `yaml:"monthly_return_rate" json:"monthly_return_rate"`
	RequiredAsset       decimal.Decimal `yaml:"required_asset" json:"required_asset"`
	StartYear           int             `yaml:"start_year" json:"start_year"`
	StartAge            int             `yaml:"start_age" json:"start_age"`
	MaxMonths           int             `yaml:"max_months,omitempty" json:"max_months,omitempty"`
}

// ProjectionRow is one year of a projection. Monetary fields hold whole
// currency units.
type ProjectionRow struct {
	Year                   int             `json:"year"`
	Age                    int             `json:"age"`
	OpeningBalance         decimal.Decimal `json:"opening_balance"`
	OpeningReturn          decimal.Decimal `json:"opening_return"`
	OpeningPlusProfit      decimal.Decimal `json:"opening_plus_profit"`
	Contribution           decimal.Decimal `json:"contribution"`
	ContributionReturn     decimal.Decimal `json:"contribution_return"`
	ContributionPlusProfit decimal.Decimal `json:"contribution_plus_profit"`
	ClosingBalance         decimal.Decimal `json:"closing_balance"`
	Shortfall              decimal.Decimal `json:"shortfall"`
}

// GoalReached reports whether the row met its target (non-positive shortfall).
func (r ProjectionRow) GoalReached() bool {
	return !r.Shortfall.IsPositive()
}

// ProjectionSeries is a chronological sequence of yearly rows.
type ProjectionSeries struct {
	Rows    []ProjectionRow `json:"rows"`
	Outcome Outcome         `json:"outcome"`
	// Months is the number of simulated months; zero for annual projections.
	Months int `json:"months,omitempty"`
}

// Len returns the number of rows.
func (s ProjectionSeries) Len() int { return len(s.Rows) }

// Final returns the last row and false when the series is empty.
func (s ProjectionSeries) Final() (ProjectionRow, bool) {
	if len(s.Rows) == 0 {
		return ProjectionRow{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}
