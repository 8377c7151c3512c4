package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wealthlab/wealth-calculator/internal/server"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if port == "" {
				port = c.Settings.Port
			}
			defer func() { _ = c.Logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(c.Engine, c.Logger).ListenAndServe(ctx, ":"+port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default: $PORT or 8080)")
	return cmd
}
