package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

func newProjectCmd() *cobra.Command {
	in := domain.ProjectionInput{StartYear: calculation.Now().Year()}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a balance year by year until it reaches a target",
		Example: `  wealthlab project --start-age 40 --initial 200000000 --rate 20 \
    --contribution 20000000 --contribution-rate 10 --target 1000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, domain.Scenario{Name: "Projection", Kind: domain.KindProjection, Projection: &in})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.StartYear, "start-year", in.StartYear, "calendar year of the first row")
	f.IntVar(&in.StartAge, "start-age", 0, "age in the first year")
	f.Var(decimalFlag(&in.InitialBalance), "initial", "opening balance")
	f.Var(decimalFlag(&in.TargetReturnRatePct), "rate", "annual return on the balance, percent")
	f.Var(decimalFlag(&in.Contribution), "contribution", "first-year contribution")
	f.Var(decimalFlag(&in.ContributionReturnRatePct), "contribution-rate", "return on each year's contribution, percent")
	f.Var(decimalFlag(&in.ContributionGrowthRatePct), "contribution-growth", "yearly growth of the contribution, percent")
	f.Var(decimalFlag(&in.TargetClosingBalance), "target", "closing balance to reach")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGoalCmd() *cobra.Command {
	in := domain.GoalSeekInput{StartYear: calculation.Now().Year()}

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Compound monthly until an asset goal is reached, depleted or the horizon runs out",
		Example: `  wealthlab goal --asset 100000000 --monthly-rate 0.02 --contribution 2000000 \
    --required 360000000 --start-age 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, domain.Scenario{Name: "Goal seek", Kind: domain.KindGoalSeek, GoalSeek: &in})
		},
	}

	f := cmd.Flags()
	f.Var(decimalFlag(&in.CurrentAsset), "asset", "current asset")
	f.Var(decimalFlag(&in.MonthlyExpense), "expense", "monthly expense drawn from the asset")
	f.Var(decimalFlag(&in.MonthlyContribution), "contribution", "monthly contribution")
	f.Var(decimalFlag(&in.MonthlyReturnRate), "monthly-rate", "monthly return as a fraction (0.02 = 2%)")
	f.Var(decimalFlag(&in.RequiredAsset), "required", "asset goal")
	f.IntVar(&in.StartYear, "start-year", in.StartYear, "calendar year of the first row")
	f.IntVar(&in.StartAge, "start-age", 0, "age in the first year")
	f.IntVar(&in.MaxMonths, "max-months", calculation.DefaultMaxMonths, "simulation horizon in months")
	_ = cmd.MarkFlagRequired("required")
	return cmd
}

func newRetireCmd() *cobra.Command {
	in := domain.EarlyRetirementInput{}
	var birthDate, tier string

	cmd := &cobra.Command{
		Use:   "retire",
		Short: "Plan an early retirement from savings, dividends or compounding",
		Example: `  wealthlab retire --current-age 40 --retirement-age 55 --lifespan 85 \
    --asset 100000000 --expense 3000000 --income 5000000 --tier high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if birthDate != "" {
				born, err := dateutil.ParseISODate(birthDate)
				if err != nil {
					return fmt.Errorf("--birth-date: %w", err)
				}
				in.CurrentAge = dateutil.Age(born, calculation.Now())
			}
			if in.CurrentAge <= 0 {
				return fmt.Errorf("one of --current-age or --birth-date is required")
			}
			parsed, err := domain.ParseDividendTier(tier)
			if err != nil {
				return err
			}
			in.Tier = parsed
			return runScenario(cmd, domain.Scenario{Name: "Early retirement", Kind: domain.KindEarlyRetirement, EarlyRetirement: &in})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.CurrentAge, "current-age", 0, "current age")
	f.StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD); overrides --current-age")
	f.IntVar(&in.RetirementAge, "retirement-age", 0, "age at retirement")
	f.IntVar(&in.ExpectedLifespan, "lifespan", 0, "expected lifespan")
	f.Var(decimalFlag(&in.CurrentAsset), "asset", "current asset")
	f.Var(decimalFlag(&in.MonthlyExpense), "expense", "monthly living expense")
	f.Var(decimalFlag(&in.MonthlyIncome), "income", "monthly income until retirement")
	f.StringVar(&tier, "tier", string(domain.TierHigh), "dividend tier (medium, high, ultra_high)")
	f.IntVar(&in.StartYear, "start-year", 0, "calendar year of the first simulated row (default: this year)")
	_ = cmd.MarkFlagRequired("retirement-age")
	_ = cmd.MarkFlagRequired("lifespan")
	return cmd
}

func newDividendCmd() *cobra.Command {
	var (
		quantity    int64
		regimes     []string
		flagged     []string
		historyFile string
	)

	cmd := &cobra.Command{
		Use:   "dividend",
		Short: "Compute dividend income and tax for a holding under each tax regime",
		Example: `  wealthlab dividend --quantity 100 --dividend 2025-05-30:1000 --dividend 2025-04-30:1000:400
  wealthlab dividend --quantity 8 --history dividends.yaml --regime foreign`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			block := &domain.DividendScenario{Quantity: quantity}
			if historyFile != "" {
				data, err := os.ReadFile(historyFile)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", historyFile, err)
				}
				if err := yaml.Unmarshal(data, &block.History); err != nil {
					return fmt.Errorf("failed to parse YAML: %w", err)
				}
			}
			for _, raw := range flagged {
				entry, err := parseDividendFlag(raw)
				if err != nil {
					return err
				}
				block.History = append(block.History, entry)
			}
			for _, r := range regimes {
				block.Regimes = append(block.Regimes, domain.TaxRegime(r))
			}
			return runScenario(cmd, domain.Scenario{Name: "Dividend income", Kind: domain.KindDividend, Dividend: block})
		},
	}

	f := cmd.Flags()
	f.Int64Var(&quantity, "quantity", 0, "shares held")
	f.StringSliceVar(&regimes, "regime", nil, "tax regimes (domestic_general, isa_general, isa_low_income, foreign); default: the domestic regimes")
	f.StringArrayVar(&flagged, "dividend", nil, "dividend record DATE:AMOUNT[:TAXABLE], repeatable")
	f.StringVar(&historyFile, "history", "", "YAML file with a list of dividend records")
	return cmd
}

func newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value an ETF purchase",
	}

	var foreign domain.ForeignPurchase
	foreignCmd := &cobra.Command{
		Use:   "foreign",
		Short: "Value a foreign-currency purchase made with local currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, domain.Scenario{Name: "Foreign valuation", Kind: domain.KindForeignValuation, ForeignValuation: &foreign})
		},
	}
	ff := foreignCmd.Flags()
	ff.Var(decimalFlag(&foreign.Amount), "amount", "local currency spent")
	ff.Var(decimalFlag(&foreign.PurchasePrice), "purchase-price", "unit price at purchase, foreign currency")
	ff.Var(decimalFlag(&foreign.PurchaseRate), "purchase-rate", "exchange rate at purchase, local per foreign unit")
	ff.Var(decimalFlag(&foreign.CurrentPrice), "current-price", "current unit price, foreign currency")
	ff.Var(decimalFlag(&foreign.CurrentRate), "current-rate", "current exchange rate")

	var domestic domain.DomesticPurchase
	domesticCmd := &cobra.Command{
		Use:   "domestic",
		Short: "Value a domestic purchase, with sale tax for taxable funds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, domain.Scenario{Name: "Domestic valuation", Kind: domain.KindDomesticValuation, DomesticValuation: &domestic})
		},
	}
	df := domesticCmd.Flags()
	df.Var(decimalFlag(&domestic.Amount), "amount", "amount spent")
	df.Var(decimalFlag(&domestic.PurchasePrice), "purchase-price", "unit price at purchase")
	df.Var(decimalFlag(&domestic.CurrentPrice), "current-price", "current unit price")
	df.StringVar(&domestic.TaxType, "tax-type", "", fmt.Sprintf("fund tax type; %q funds pay tax on the sale profit", calculation.SaleTaxType))

	cmd.AddCommand(foreignCmd, domesticCmd)
	return cmd
}
