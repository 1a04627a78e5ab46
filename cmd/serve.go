package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/metrics"
	"github.com/s0up4200/matchboard/server"
)

var serveAddress string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve matches over a JSON HTTP API",
	Long: `Start an HTTP server exposing the football-data.org operations as JSON
under /api, with /health and Prometheus metrics on /metrics.

All API handlers share one client, so upstream requests from concurrent
HTTP callers are still queued and spaced at least one second apart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddress != "" {
		cfg.Server.Address = serveAddress
	}

	m := metrics.NewManager()

	// Rebuild the client so the scheduler reports to the metrics registry
	instrumented, err := newClient(cfg.FootballData, m)
	if err != nil {
		return fmt.Errorf("failed to create football-data client: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("version", currentVersion).
		Str("mode", string(instrumented.Mode())).
		Strs("presets", filters.ListFilters()).
		Msg("Starting matchboard server")

	srv := server.NewServer(cfg.Server, instrumented, filters, m, logger)
	return srv.ListenAndServe(ctx)
}
