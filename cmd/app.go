package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/gcal-reminder/internal/config"
	"github.com/teemow/gcal-reminder/internal/google"
	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/logging"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

// googleOptions is the base for the Google client. Tests point the endpoints
// at local fakes.
var googleOptions google.Options

// app bundles everything a command needs once configuration is resolved.
type app struct {
	config   config.Config
	scopes   []string
	logger   *slog.Logger
	provider *instrumentation.Provider
	workflow *reminder.Workflow
}

// newApp loads configuration and wires the Google client, instrumentation
// and workflow. Callers must call close.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	configFile, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Debug)
	if cfg.File != "" {
		logger.Debug("Loaded config file", "path", cfg.File)
	}

	logger.Debug("Resolved configuration",
		"client_id", cfg.Credentials.ClientID,
		"client_secret", logging.RedactSecret(cfg.Credentials.ClientSecret),
		"redirect_uri", cfg.Credentials.RedirectURI,
		"scopes", cfg.Scopes,
		"disable_refresh", cfg.DisableRefresh)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scopes, err := google.ResolveScopes(cfg.Scopes)
	if err != nil {
		return nil, err
	}

	instrConfig, err := instrumentationConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("invalid instrumentation config: %w", err)
	}
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	if provider.Enabled() {
		logger.Debug("Instrumentation enabled",
			"metrics_exporter", instrConfig.MetricsExporter,
			"tracing_exporter", instrConfig.TracingExporter,
			"pushgateway", instrConfig.PushgatewayURL)
	}

	opts := googleOptions
	opts.DisableRefresh = cfg.DisableRefresh
	opts.Metrics = provider.Metrics()
	opts.Logger = logger

	return &app{
		config:   cfg,
		scopes:   scopes,
		logger:   logger,
		provider: provider,
		workflow: reminder.NewWorkflow(google.NewClient(opts), logger),
	}, nil
}

// close flushes instrumentation. It uses its own timeout so metrics still
// reach the Pushgateway after the command context was cancelled.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), instrumentation.DefaultPushTimeout)
	defer cancel()
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("Error shutting down instrumentation", logging.Err(err))
	}
}

// parseTime accepts RFC 3339 timestamps; empty means fallback.
func parseTime(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected RFC 3339 (e.g. 2024-05-01T09:00:00Z): %w", value, err)
	}
	return t, nil
}
