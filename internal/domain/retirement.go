package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DividendTier is the yield assumed for a dividend-funded retirement.
type DividendTier string

const (
	TierMedium    DividendTier = "medium"
	TierHigh      DividendTier = "high"
	TierUltraHigh DividendTier = "ultra_high"
)

// Rate returns the annual yield of the tier as a fraction. Unknown tiers use
// the high tier.
func (t DividendTier) Rate() decimal.Decimal {
	switch t {
	case TierMedium:
		return decimal.NewFromFloat(0.05)
	case TierUltraHigh:
		return decimal.NewFromFloat(0.20)
	default:
		return decimal.NewFromFloat(0.10)
	}
}

// ParseDividendTier validates a tier name.
func ParseDividendTier(s string) (DividendTier, error) {
	switch t := DividendTier(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TierHigh, nil
	case TierMedium, TierHigh, TierUltraHigh:
		return t, nil
	default:
		return TierHigh, fmt.Errorf("unknown dividend tier %q (medium, high, ultra_high)", s)
	}
}

// EarlyRetirementInput collects the household figures of the early-retirement scenario.
type EarlyRetirementInput struct {
	CurrentAge       int             `yaml:"current_age" json:"current_age"`
	RetirementAge    int             `yaml:"retirement_age" json:"retirement_age"`
	ExpectedLifespan int             `yaml:"expected_lifespan" json:"expected_lifespan"`
	CurrentAsset     decimal.Decimal `yaml:"current_asset" json:"current_asset"`
	MonthlyExpense   decimal.Decimal `yaml:"monthly_expense" json:"monthly_expense"`
	MonthlyIncome    decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	Tier             DividendTier    `yaml:"dividend_tier" json:"dividend_tier"`
	StartYear        int             `yaml:"start_year,omitempty" json:"start_year,omitempty"`
}

// EarlyRetirementPlan compares living off savings, a dividend portfolio, and
// the goal-seeking compounding system.
type EarlyRetirementPlan struct {
	// Without investing.
	DepletionAge    decimal.Decimal `json:"depletion_age"`
	YearsNeedWork   decimal.Decimal `json:"years_need_work"`
	TotalWorkNeeded decimal.Decimal `json:"total_work_needed"`
	MonthlyExpense  decimal.Decimal `json:"monthly_expense"`

	// Dividend portfolio.
	DividendRate    decimal.Decimal `json:"dividend_rate"`
	RequiredAsset   decimal.Decimal `json:"required_asset"`
	Shortfall       decimal.Decimal `json:"shortfall"`
	CoveragePercent decimal.Decimal `json:"coverage_percent"`

	// Goal-seeking system.
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution"`
	MonthsToGoal        int              `json:"months_to_goal"`
	YearsToGoal         decimal.Decimal  `json:"years_to_goal"`
	GoalAge             decimal.Decimal  `json:"goal_age"`
	Surplus             decimal.Decimal  `json:"surplus"`
	YearsSaved          decimal.Decimal  `json:"years_saved"`
	Simulation          ProjectionSeries `json:"simulation"`
}
