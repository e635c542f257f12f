package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/gcal-reminder/internal/config"
	"github.com/teemow/gcal-reminder/internal/instrumentation"
)

// Global flag names shared by the url and remind commands.
const (
	flagConfig          = "config"
	flagClientID        = "client-id"
	flagClientSecret    = "client-secret"
	flagRedirectURI     = "redirect-uri"
	flagScope           = "scope"
	flagNoRefresh       = "no-refresh"
	flagDebug           = "debug"
	flagLogFormat       = "log-format"
	flagInstrumentation = "instrumentation"
	flagMetricsExporter = "metrics-exporter"
	flagTracingExporter = "tracing-exporter"
	flagPushgateway     = "metrics-pushgateway"
)

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()

	pf.String(flagConfig, "", "Config file (default: ./gcal-reminder.yaml or $XDG_CONFIG_HOME/gcal-reminder/gcal-reminder.yaml)")
	pf.String(flagClientID, "", "OAuth client ID (env: GOOGLE_CLIENT_ID)")
	pf.String(flagClientSecret, "", "OAuth client secret (env: GOOGLE_CLIENT_SECRET)")
	pf.String(flagRedirectURI, config.DefaultRedirectURI, "OAuth redirect URI registered for the client (env: GOOGLE_REDIRECT_URI)")
	pf.StringSlice(flagScope, nil, "OAuth scopes to request, short names (calendar, calendar.events) or full URLs (default: calendar)")
	pf.Bool(flagNoRefresh, false, "Use the exchanged access token as-is and never refresh it")
	pf.Bool(flagDebug, false, "Enable debug logging")
	pf.String(flagLogFormat, "text", "Log format: text or json")

	pf.Bool(flagInstrumentation, false, "Enable OpenTelemetry metrics and tracing (env: INSTRUMENTATION_ENABLED)")
	pf.String(flagMetricsExporter, instrumentation.ExporterPrometheus, "Metrics exporter: prometheus, otlp or stdout (env: METRICS_EXPORTER)")
	pf.String(flagTracingExporter, instrumentation.ExporterNone, "Tracing exporter: otlp, stdout or none (env: TRACING_EXPORTER)")
	pf.String(flagPushgateway, "", "Prometheus Pushgateway URL that receives the metrics on exit (env: METRICS_PUSHGATEWAY_URL)")
}

// instrumentationConfig starts from the environment defaults and applies
// flags that were set explicitly.
func instrumentationConfig(cmd *cobra.Command) (instrumentation.Config, error) {
	cfg := instrumentation.DefaultConfig()
	cfg.ServiceVersion = version

	flags := cmd.Flags()
	if flags.Changed(flagInstrumentation) {
		enabled, err := flags.GetBool(flagInstrumentation)
		if err != nil {
			return cfg, err
		}
		cfg.Enabled = enabled
	}
	if flags.Changed(flagMetricsExporter) {
		cfg.MetricsExporter, _ = flags.GetString(flagMetricsExporter)
	}
	if flags.Changed(flagTracingExporter) {
		cfg.TracingExporter, _ = flags.GetString(flagTracingExporter)
	}
	if flags.Changed(flagPushgateway) {
		cfg.PushgatewayURL, _ = flags.GetString(flagPushgateway)
	}
	// Pushing needs collected metrics.
	if cfg.PushgatewayURL != "" {
		cfg.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
