package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.ValidateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// ValidateScenario validates a single scenario
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	switch scenario.Kind {
	case domain.KindProjection:
		if scenario.Projection == nil {
			return fmt.Errorf("projection block is required for kind %s", scenario.Kind)
		}
		return ip.validateProjection(scenario.Projection)
	case domain.KindGoalSeek:
		if scenario.GoalSeek == nil {
			return fmt.Errorf("goal_seek block is required for kind %s", scenario.Kind)
		}
		return ip.validateGoalSeek(scenario.GoalSeek)
	case domain.KindEarlyRetirement:
		if scenario.EarlyRetirement == nil {
			return fmt.Errorf("early_retirement block is required for kind %s", scenario.Kind)
		}
		return ip.validateEarlyRetirement(scenario.EarlyRetirement)
	case domain.KindDividend:
		if scenario.Dividend == nil {
			return fmt.Errorf("dividend block is required for kind %s", scenario.Kind)
		}
		return ip.validateDividend(scenario.Dividend)
	case domain.KindForeignValuation:
		if scenario.ForeignValuation == nil {
			return fmt.Errorf("valuation_foreign block is required for kind %s", scenario.Kind)
		}
		p := scenario.ForeignValuation
		if p.Amount.IsNegative() {
			return fmt.Errorf("amount cannot be negative")
		}
		if !p.PurchasePrice.IsPositive() || !p.PurchaseRate.IsPositive() {
			return fmt.Errorf("purchase price and purchase rate must be positive")
		}
		if p.CurrentPrice.IsNegative() || p.CurrentRate.IsNegative() {
			return fmt.Errorf("current price and current rate cannot be negative")
		}
	case domain.KindDomesticValuation:
		if scenario.DomesticValuation == nil {
			return fmt.Errorf("valuation_domestic block is required for kind %s", scenario.Kind)
		}
		p := scenario.DomesticValuation
		if p.Amount.IsNegative() {
			return fmt.Errorf("amount cannot be negative")
		}
		if !p.PurchasePrice.IsPositive() {
			return fmt.Errorf("purchase price must be positive")
		}
		if p.CurrentPrice.IsNegative() {
			return fmt.Errorf("current price cannot be negative")
		}
	case "":
		return fmt.Errorf("scenario kind is required")
	default:
		return fmt.Errorf("unknown scenario kind %q", scenario.Kind)
	}

	return nil
}

var minusHundred = decimal.NewFromInt(-100)

// validateProjection rejects rates that would flip the sign of a balance
func (ip *InputParser) validateProjection(in *domain.ProjectionInput) error {
	if in.InitialBalance.IsNegative() {
		return fmt.Errorf("initial balance cannot be negative")
	}
	if in.Contribution.IsNegative() {
		return fmt.Errorf("contribution cannot be negative")
	}
	if in.TargetReturnRatePct.LessThan(minusHundred) {
		return fmt.Errorf("target return rate cannot be less than -100%%")
	}
	if in.ContributionReturnRatePct.LessThan(minusHundred) {
		return fmt.Errorf("contribution return rate cannot be less than -100%%")
	}
	if in.ContributionGrowthRatePct.LessThan(minusHundred) {
		return fmt.Errorf("contribution growth rate cannot be less than -100%%")
	}
	if in.StartAge < 0 {
		return fmt.Errorf("start age cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateGoalSeek(in *domain.GoalSeekInput) error {
	if in.MonthlyExpense.IsNegative() || in.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly expense and contribution cannot be negative")
	}
	if in.MonthlyReturnRate.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("monthly return rate cannot be less than -1")
	}
	if in.MaxMonths < 0 {
		return fmt.Errorf("max months cannot be negative")
	}
	if in.MaxMonths > domain.MaxGoalSeekMonths {
		return fmt.Errorf("max months cannot exceed %d", domain.MaxGoalSeekMonths)
	}
	return nil
}

func (ip *InputParser) validateEarlyRetirement(in *domain.EarlyRetirementInput) error {
	if in.CurrentAge <= 0 {
		return fmt.Errorf("current age must be positive")
	}
	if in.RetirementAge < in.CurrentAge {
		return fmt.Errorf("retirement age cannot be before current age")
	}
	if in.ExpectedLifespan < in.RetirementAge {
		return fmt.Errorf("expected lifespan cannot be before retirement age")
	}
	if in.CurrentAsset.IsNegative() || in.MonthlyExpense.IsNegative() || in.MonthlyIncome.IsNegative() {
		return fmt.Errorf("asset, expense and income cannot be negative")
	}
	tier, err := domain.ParseDividendTier(string(in.Tier))
	if err != nil {
		return err
	}
	in.Tier = tier
	return nil
}

func (ip *InputParser) validateDividend(in *domain.DividendScenario) error {
	if in.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	for _, r := range in.Regimes {
		switch r {
		case domain.RegimeDomesticGeneral, domain.RegimeISAGeneral, domain.RegimeISALowIncome, domain.RegimeForeign:
		default:
			return fmt.Errorf("unknown tax regime %q", r)
		}
	}
	for i, entry := range in.History {
		if entry.PerShareAmount.IsNegative() || entry.PerShareTaxableAmount.IsNegative() {
			return fmt.Errorf("history entry %d: amounts cannot be negative", i)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{
				Name: "Billion in seven years",
				Kind: domain.KindProjection,
				Projection: &domain.ProjectionInput{
					StartYear:                 2025,
					StartAge:                  40,
					InitialBalance:            decimal.NewFromInt(200_000_000),
					TargetReturnRatePct:       decimal.NewFromInt(20),
					Contribution:              decimal.NewFromInt(20_000_000),
					ContributionReturnRatePct: decimal.NewFromInt(10),
					ContributionGrowthRatePct: decimal.Zero,
					TargetClosingBalance:      decimal.NewFromInt(1_000_000_000),
				},
			},
			{
				Name: "Retire at 55",
				Kind: domain.KindEarlyRetirement,
				EarlyRetirement: &domain.EarlyRetirementInput{
					CurrentAge:       40,
					RetirementAge:    55,
					ExpectedLifespan: 85,
					CurrentAsset:     decimal.NewFromInt(100_000_000),
					MonthlyExpense:   decimal.NewFromInt(3_000_000),
					MonthlyIncome:    decimal.NewFromInt(5_000_000),
					Tier:             domain.TierHigh,
				},
			},
			{
				Name: "Monthly dividend fund",
				Kind: domain.KindDividend,
				Dividend: &domain.DividendScenario{
					Quantity: 100,
					History: []domain.DividendHistoryEntry{
						{PerShareAmount: decimal.NewFromInt(1000), PerShareTaxableAmount: decimal.NewFromInt(1000)},
					},
					Regimes: domain.DomesticRegimes,
				},
			},
			{
				Name: "US dividend ETF",
				Kind: domain.KindForeignValuation,
				ForeignValuation: &domain.ForeignPurchase{
					Amount:        decimal.NewFromInt(1_000_000),
					PurchasePrice: decimal.NewFromInt(100),
					PurchaseRate:  decimal.NewFromInt(1300),
					CurrentPrice:  decimal.NewFromInt(110),
					CurrentRate:   decimal.NewFromInt(1400),
				},
			},
			{
				Name: "Domestic covered-call ETF",
				Kind: domain.KindDomesticValuation,
				DomesticValuation: &domain.DomesticPurchase{
					Amount:        decimal.NewFromInt(1_000_000),
					PurchasePrice: decimal.NewFromInt(9000),
					CurrentPrice:  decimal.NewFromInt(10000),
					TaxType:       "A",
				},
			},
		},
	}
}
