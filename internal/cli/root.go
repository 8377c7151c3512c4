// Package cli implements the wealthlab command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/internal/logging"
	"github.com/wealthlab/wealth-calculator/internal/output"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	LogLevel     string
	LogFormat    string
	OutputFormat string
	OutputPath   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Settings     *config.Settings
	Logger       *zap.SugaredLogger
	Engine       *calculation.CalculationEngine
	Parser       *config.InputParser
	OutputFormat string
	OutputPath   string
}

// NewRootCommand creates the root command with its global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "wealthlab",
		Short:   "Compound-growth projections, dividend tax and ETF valuation",
		Long:    "wealthlab projects savings toward a target balance, seeks the months needed to\nreach a required asset, plans early retirement, and computes dividend income\ntax and the valuation of domestic and foreign ETF purchases.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.LogFormat, "log-format", "console", "log encoding (console, json)")
	pf.StringVarP(&opts.OutputFormat, "format", "f", "console", "output format (console, csv, detailed-csv, json, markdown, html, terminal)")
	pf.StringVarP(&opts.OutputPath, "output", "o", "", `write output to this file; "auto" picks a timestamped name (default: stdout)`)

	cmd.AddCommand(
		newProjectCmd(),
		newGoalCmd(),
		newRetireCmd(),
		newDividendCmd(),
		newValueCmd(),
		newRunCmd(),
		newExampleConfigCmd(),
		newLabCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

// persistentPreRun loads settings, builds the logger and engine, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	settings := config.LoadSettings()

	level := opts.LogLevel
	if !cmd.Flags().Changed("log-level") && cmd.Name() == "serve" {
		level = settings.LogLevel
	}
	logger, err := logging.New(logging.Config{Level: level, Format: opts.LogFormat})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug = logging.ParseLevel(level) == zap.DebugLevel

	cliCtx := &CLIContext{
		Settings:     settings,
		Logger:       logger,
		Engine:       engine,
		Parser:       config.NewInputParser(),
		OutputFormat: opts.OutputFormat,
		OutputPath:   opts.OutputPath,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// runScenario validates and runs one scenario, then writes it as a one-result report.
func runScenario(cmd *cobra.Command, scenario domain.Scenario) error {
	c, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if err := c.Parser.ValidateScenario(&scenario); err != nil {
		return fmt.Errorf("invalid %s input: %w", scenario.Kind, err)
	}
	result, err := c.Engine.RunScenario(cmd.Context(), &scenario)
	if err != nil {
		return err
	}
	return c.writeReport(cmd, &domain.Report{
		GeneratedAt: calculation.Now(),
		Results:     []domain.ScenarioResult{*result},
	})
}

// writeReport renders the report with the selected formatter.
func (c *CLIContext) writeReport(cmd *cobra.Command, report *domain.Report) error {
	f := output.GetFormatterByName(c.OutputFormat)
	if f == nil {
		return fmt.Errorf("%w: %q (available: %v)", output.ErrUnsupportedFormat, c.OutputFormat, output.AvailableFormatterNames())
	}
	if c.OutputPath == "auto" {
		filename, err := output.WriteFormatted(f, report, output.ExtensionFor(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	return c.emit(cmd, data)
}

// emit writes rendered output to stdout or the --output file.
func (c *CLIContext) emit(cmd *cobra.Command, data []byte) error {
	if c.OutputPath == "" || c.OutputPath == "-" || c.OutputPath == "auto" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.OutputPath, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Output written to %s\n", c.OutputPath)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wealthlab %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
}
