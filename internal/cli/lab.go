package cli

import (
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/internal/lab"
	"github.com/wealthlab/wealth-calculator/internal/output"
	"github.com/wealthlab/wealth-calculator/internal/refdata"
)

func newLabCmd() *cobra.Command {
	var (
		periodCode string
		amount     = decimal.NewFromInt(10_000_000)
	)

	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Replay a high-dividend ETF purchase against the reference-data backend",
		Long: "lab buys a fund at the close at the start of the period and values it today,\n" +
			"with the dividends it paid in between. Reference data comes from the backend\n" +
			"named by WEALTHLAB_API_BASE_URL.",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&periodCode, "period", domain.OneYear.Code(), "look-back period (one_year, six_month, three_month)")
	pf.Var(decimalFlag(&amount), "amount", "amount invested, local currency")

	simulate := func(market domain.Market) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("etf id %q: %w", args[0], err)
			}
			period, err := domain.ParsePeriodStrict(periodCode)
			if err != nil {
				return err
			}
			if !amount.IsPositive() {
				return fmt.Errorf("--amount must be positive")
			}

			client := refdata.NewClient(c.Settings, c.Logger)
			etf := findETF(cmd, c, client, market, id)

			var result any
			switch market {
			case domain.MarketDomestic:
				result, err = lab.DomesticHighDividend(cmd.Context(), client, etf, period, amount)
			default:
				result, err = lab.USAHighDividend(cmd.Context(), client, etf, period, amount, calculation.Now())
			}
			if err != nil {
				return err
			}
			data, err := output.RenderLab(result, c.OutputFormat)
			if err != nil {
				return err
			}
			return c.emit(cmd, data)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "domestic <etf-id>",
			Short: "Simulate a domestic high-dividend fund",
			Args:  cobra.ExactArgs(1),
			RunE:  simulate(domain.MarketDomestic),
		},
		&cobra.Command{
			Use:   "usa <etf-id>",
			Short: "Simulate a US high-dividend fund bought with local currency",
			Args:  cobra.ExactArgs(1),
			RunE:  simulate(domain.MarketUSA),
		},
		newLabETFsCmd(),
		newLabPeriodsCmd(),
	)
	return cmd
}

// findETF looks the fund up in the market listing. A fund missing from the
// listing is simulated under its id alone.
func findETF(cmd *cobra.Command, c *CLIContext, client *refdata.Client, market domain.Market, id int64) domain.ETF {
	etfs, err := client.ETFs(cmd.Context(), market, "")
	if err != nil {
		c.Logger.Warnf("etf listing unavailable: %v", err)
	}
	for _, etf := range etfs {
		if etf.ID == id {
			return etf
		}
	}
	return domain.ETF{ID: id, Ticker: strconv.FormatInt(id, 10)}
}

func newLabETFsCmd() *cobra.Command {
	var market, etfType string

	cmd := &cobra.Command{
		Use:   "etfs",
		Short: "List the funds of a market",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			etfs, err := refdata.NewClient(c.Settings, c.Logger).ETFs(cmd.Context(), domain.Market(market), etfType)
			if err != nil {
				return err
			}
			if output.NormalizeFormatName(c.OutputFormat) == "json" {
				data, err := json.MarshalIndent(etfs, "", "  ")
				if err != nil {
					return err
				}
				return c.emit(cmd, append(data, '\n'))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-10s %-4s %s\n", "ID", "TICKER", "TAX", "NAME")
			for _, etf := range etfs {
				fmt.Fprintf(out, "%-6d %-10s %-4s %s\n", etf.ID, etf.Ticker, etf.TaxType, etf.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&market, "market", string(domain.MarketDomestic), "market (domestic, usa)")
	cmd.Flags().StringVar(&etfType, "type", "high_dividend", "fund type filter; empty lists all")
	return cmd
}

func newLabPeriodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the dividend periods offered by the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			options, err := refdata.NewClient(c.Settings, c.Logger).PeriodOptions(cmd.Context())
			if errors.Is(err, refdata.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "no dividend periods configured")
				return nil
			}
			if err != nil {
				return err
			}
			for _, o := range options {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-14s %d months\n", o.Code, o.Period.Code(), o.Period.MonthsAgo())
			}
			return nil
		},
	}
}
