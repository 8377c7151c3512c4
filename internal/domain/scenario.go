package domain

import (
	"time"
)

// ScenarioKind selects which calculation a scenario runs.
type ScenarioKind string

const (
	KindProjection        ScenarioKind = "projection"
	KindGoalSeek          ScenarioKind = "goal_seek"
	KindEarlyRetirement   ScenarioKind = "early_retirement"
	KindDividend          ScenarioKind = "dividend"
	KindForeignValuation  ScenarioKind = "valuation_foreign"
	KindDomesticValuation ScenarioKind = "valuation_domestic"
)

// DividendScenario is a held quantity and its dividend history.
type DividendScenario struct {
	Quantity int64                  `yaml:"quantity" json:"quantity"`
	History  []DividendHistoryEntry `yaml:"history" json:"history"`
	// Regimes defaults to the domestic regimes when empty.
	Regimes []TaxRegime `yaml:"regimes,omitempty" json:"regimes,omitempty"`
}

// Scenario is one named calculation request. Exactly one input block
// matching Kind must be set.
type Scenario struct {
	Name              string                `yaml:"name" json:"name"`
	Kind              ScenarioKind          `yaml:"kind" json:"kind"`
	Projection        *ProjectionInput      `yaml:"projection,omitempty" json:"projection,omitempty"`
	GoalSeek          *GoalSeekInput        `yaml:"goal_seek,omitempty" json:"goal_seek,omitempty"`
	EarlyRetirement   *EarlyRetirementInput `yaml:"early_retirement,omitempty" json:"early_retirement,omitempty"`
	Dividend          *DividendScenario     `yaml:"dividend,omitempty" json:"dividend,omitempty"`
	ForeignValuation  *ForeignPurchase      `yaml:"valuation_foreign,omitempty" json:"valuation_foreign,omitempty"`
	DomesticValuation *DomesticPurchase     `yaml:"valuation_domestic,omitempty" json:"valuation_domestic,omitempty"`
}

// Configuration is the top-level scenario file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ScenarioResult carries the output of one scenario; only the block matching
// Kind is populated.
type ScenarioResult struct {
	Name      string                 `json:"name"`
	Kind      ScenarioKind           `json:"kind"`
	Series    *ProjectionSeries      `json:"series,omitempty"`
	Plan      *EarlyRetirementPlan   `json:"plan,omitempty"`
	Dividends []DividendIncomeResult `json:"dividends,omitempty"`
	Foreign   *ForeignValuation      `json:"foreign,omitempty"`
	Domestic  *DomesticValuation     `json:"domestic,omitempty"`
}

// Report groups the results of a scenario file run.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Results     []ScenarioResult `json:"results"`
}
