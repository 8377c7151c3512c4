package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wealthlab/wealth-calculator/internal/output"
)

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run every scenario of a YAML configuration",
		Example: "  wealthlab run -c scenarios.yaml --format markdown -o report.md",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg, err := c.Parser.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			c.Logger.Infof("loaded %d scenarios from %s", len(cfg.Scenarios), configPath)

			report, err := c.Engine.RunScenarios(cfg)
			if err != nil {
				return err
			}
			return c.writeReport(cmd, report)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario configuration file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example scenario configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			example := c.Parser.CreateExampleConfiguration()
			if len(args) == 1 {
				if err := output.SaveConfiguration(example, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Example configuration written to %s\n", args[0])
				return nil
			}
			data, err := yaml.Marshal(example)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
