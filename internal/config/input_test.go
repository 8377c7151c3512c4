package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Billion\"\n" +
		"    kind: projection\n" +
		"    projection:\n" +
		"      start_year: 2025\n" +
		"      start_age: 40\n" +
		"      initial_balance: 200000000\n" +
		"      target_return_rate_pct: 20\n" +
		"      contribution: 20000000\n" +
		"      contribution_return_rate_pct: 10\n" +
		"      contribution_growth_rate_pct: 0\n" +
		"      target_closing_balance: 1000000000\n" +
		"  - name: \"Dividends\"\n" +
		"    kind: dividend\n" +
		"    dividend:\n" +
		"      quantity: 100\n" +
		"      regimes: [domestic_general, isa_general]\n" +
		"      history:\n" +
		"        - record_date: 2025-05-30\n" +
		"          per_share_amount: 1000\n" +
		"          per_share_taxable_amount: \"1000\"\n" +
		"  - name: \"Retire\"\n" +
		"    kind: early_retirement\n" +
		"    early_retirement:\n" +
		"      current_age: 40\n" +
		"      retirement_age: 55\n" +
		"      expected_lifespan: 85\n" +
		"      current_asset: 100000000\n" +
		"      monthly_expense: 3000000\n" +
		"      monthly_income: 5000000\n"

	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, config.Scenarios, 3)

	p := config.Scenarios[0].Projection
	require.NotNil(t, p)
	assert.Equal(t, 2025, p.StartYear)
	assert.True(t, p.InitialBalance.Equal(decimal.NewFromInt(200_000_000)))
	assert.True(t, p.TargetClosingBalance.Equal(decimal.NewFromInt(1_000_000_000)))

	div := config.Scenarios[1].Dividend
	require.NotNil(t, div)
	assert.Equal(t, int64(100), div.Quantity)
	assert.Equal(t, []domain.TaxRegime{domain.RegimeDomesticGeneral, domain.RegimeISAGeneral}, div.Regimes)
	require.Len(t, div.History, 1)
	assert.Equal(t, 2025, div.History[0].RecordDate.Year())
	assert.True(t, div.History[0].PerShareTaxableAmount.Equal(decimal.NewFromInt(1000)))

	// validation fills the default tier
	assert.Equal(t, domain.TierHigh, config.Scenarios[2].EarlyRetirement.Tier)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios: [unterminated"), 0o644))
	_, err = parser.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()
	positive := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		config  domain.Configuration
		wantErr string
	}{
		{"no scenarios", domain.Configuration{}, "no scenarios provided"},
		{"missing name", domain.Configuration{Scenarios: []domain.Scenario{{Kind: domain.KindProjection}}}, "scenario name is required"},
		{"missing kind", domain.Configuration{Scenarios: []domain.Scenario{{Name: "a"}}}, "scenario kind is required"},
		{"unknown kind", domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: "lottery"}}}, "unknown scenario kind"},
		{"missing block", domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindGoalSeek}}}, "goal_seek block is required"},
		{
			"negative contribution",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindProjection, Projection: &domain.ProjectionInput{Contribution: decimal.NewFromInt(-1)}}}},
			"contribution cannot be negative",
		},
		{
			"rate below -100%",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindProjection, Projection: &domain.ProjectionInput{TargetReturnRatePct: decimal.NewFromInt(-101)}}}},
			"target return rate",
		},
		{
			"retirement before current age",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindEarlyRetirement, EarlyRetirement: &domain.EarlyRetirementInput{CurrentAge: 50, RetirementAge: 45, ExpectedLifespan: 80}}}},
			"retirement age cannot be before current age",
		},
		{
			"unknown tier",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindEarlyRetirement, EarlyRetirement: &domain.EarlyRetirementInput{CurrentAge: 40, RetirementAge: 45, ExpectedLifespan: 80, Tier: "extreme"}}}},
			"unknown dividend tier",
		},
		{
			"unknown regime",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindDividend, Dividend: &domain.DividendScenario{Regimes: []domain.TaxRegime{"offshore"}}}}},
			"unknown tax regime",
		},
		{
			"zero purchase rate",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindForeignValuation, ForeignValuation: &domain.ForeignPurchase{Amount: positive, PurchasePrice: positive}}}},
			"must be positive",
		},
		{
			"zero domestic price",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindDomesticValuation, DomesticValuation: &domain.DomesticPurchase{Amount: positive}}}},
			"purchase price must be positive",
		},
		{
			"horizon beyond 50 years",
			domain.Configuration{Scenarios: []domain.Scenario{{Name: "a", Kind: domain.KindGoalSeek, GoalSeek: &domain.GoalSeekInput{MaxMonths: 601}}}},
			"max months cannot exceed 600",
		},
		{
			"duplicate names",
			domain.Configuration{Scenarios: []domain.Scenario{
				{Name: "a", Kind: domain.KindGoalSeek, GoalSeek: &domain.GoalSeekInput{}},
				{Name: "a", Kind: domain.KindGoalSeek, GoalSeek: &domain.GoalSeekInput{}},
			}},
			"duplicate name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateConfiguration(&tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(config))

	// the example survives a YAML round trip and still validates
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	reparsed, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, reparsed.Scenarios, len(config.Scenarios))
	assert.True(t, reparsed.Scenarios[0].Projection.InitialBalance.Equal(config.Scenarios[0].Projection.InitialBalance))
}
