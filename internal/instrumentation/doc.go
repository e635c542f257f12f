// Package instrumentation provides OpenTelemetry instrumentation for gcal-reminder.
//
// The CLI is a short-lived batch process, so instrumentation is disabled by
// default. When enabled it records:
//   - google_api_operations_total / google_api_operation_duration_seconds
//     for token exchanges and event insertions
//   - oauth_auth_total: authorization code exchanges by result
//   - oauth_token_refresh_total: transparent access token refreshes by result
//
// Spans are created for Google API calls (google.<service>.<operation>).
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: gcal-reminder)
//   - METRICS_PUSHGATEWAY_URL: Prometheus Pushgateway to push to on shutdown
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar,
//		instrumentation.OperationCreate, instrumentation.StatusSuccess, time.Since(start))
package instrumentation
