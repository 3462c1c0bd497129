package cmd

import (
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/wardenbot/warden/internal/app"
	"github.com/wardenbot/warden/internal/config"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/logging"
	"github.com/wardenbot/warden/internal/pubsub"
	"github.com/wardenbot/warden/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the journal service with the reference sinks",
	RunE: func(c *cobra.Command, args []string) error {
		logging.New()

		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		tracer, stopTracing, err := pubsub.SetupTracing(c.Context(), pubsub.LoadTracingConfigFromEnv())
		if err != nil {
			return fmt.Errorf("setting up bus tracing: %w", err)
		}
		defer stopTracing()

		injector := app.New(cfg, tracer)
		if err := app.RegisterSinks(injector); err != nil {
			return fmt.Errorf("registering sinks: %w", err)
		}

		router := do.MustInvoke[*journal.Router](injector)
		slog.Info("journal service starting",
			"admin_addr", cfg.AdminAddr, "listeners", len(router.Listeners()))

		server.New(router).Start(cfg.AdminAddr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
