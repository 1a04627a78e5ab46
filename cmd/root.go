package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/matchboard/config"
	"github.com/s0up4200/matchboard/filter"
	"github.com/s0up4200/matchboard/footballdata"
	"github.com/s0up4200/matchboard/report"
	"github.com/s0up4200/matchboard/scheduler"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *footballdata.Client
	filters  *filter.Manager
	logLevel string

	// Output flags
	outputFormat string
	showDetails  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "matchboard",
	Short: "Browse football-data.org fixtures and results from the terminal",
	Long: `matchboard queries the football-data.org v4 API for matches and
competitions. Requests are queued and sent one at a time, at least one
second apart, to stay inside the free tier rate limit.

The API token is read from football_data.api_token in the config file or
from the FOOTBALL_DATA_API_TOKEN environment variable.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var rendered *renderedError
		if !errors.As(err, &rendered) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml (default from config)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show secondary match and competition details")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
}

// initializeApp loads the configuration and creates the client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("details") {
		cfg.Output.ShowDetails = showDetails
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}

	compiler := filter.NewCompiler(filter.WithLogger(logger.With().Str("component", "filter").Logger()))
	filters = filter.NewManager(filter.WithCompiler(compiler))
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return err
	}

	client, err = newClient(cfg.FootballData, nil)
	if err != nil {
		return fmt.Errorf("failed to create football-data client: %w", err)
	}

	return nil
}

// newClient builds a client from configuration. recorder may be nil.
func newClient(fd config.FootballDataConfig, recorder scheduler.Recorder) (*footballdata.Client, error) {
	opts := []footballdata.Option{
		footballdata.WithMinInterval(fd.MinInterval),
		footballdata.WithQuota(fd.QuotaPerMinute),
		footballdata.WithTimeout(fd.Timeout),
	}
	if fd.BaseURL != "" {
		opts = append(opts, footballdata.WithBaseURL(fd.BaseURL))
	}
	if fd.Mode == "proxy" {
		opts = append(opts, footballdata.WithProxy(fd.ProxyURL))
	}
	if recorder != nil {
		opts = append(opts, footballdata.WithRecorder(recorder))
	}
	if currentVersion != "" {
		opts = append(opts, footballdata.WithUserAgent("matchboard/"+currentVersion))
	}

	return footballdata.NewClient(fd.APIToken, logger, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// loggingFromFlags is the logging setup used when no config is loaded
func loggingFromFlags() config.LoggingConfig {
	level := logLevel
	if level == "" {
		level = "info"
	}
	return config.LoggingConfig{Level: level, Format: "console", Color: true}
}

// newRenderer returns a renderer for command output on stdout
func newRenderer(cmd *cobra.Command) (*report.Renderer, error) {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return report.NewRenderer(cmd.OutOrStdout(), format, report.WithDetails(cfg.Output.ShowDetails)), nil
}

// renderedError marks an error that was already shown to the user
type renderedError struct {
	err error
}

func (e *renderedError) Error() string { return e.err.Error() }

func (e *renderedError) Unwrap() error { return e.err }

// fail renders err on stderr and returns it marked as rendered
func fail(cmd *cobra.Command, err error) error {
	format, _ := report.ParseFormat(cfg.Output.Format)
	r := report.NewRenderer(cmd.ErrOrStderr(), format)
	if renderErr := r.RenderError(err); renderErr != nil {
		return err
	}
	return &renderedError{err: err}
}

// resolveFilter returns the filter selected by --filter or --preset, or nil
func resolveFilter(expression, preset string) (*filter.Filter, error) {
	switch {
	case expression != "":
		return filters.Resolve(expression)
	case preset != "":
		f, ok := filters.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config (available: %s)", preset, strings.Join(filters.ListFilters(), ", "))
		}
		return f, nil
	default:
		return nil, nil
	}
}
