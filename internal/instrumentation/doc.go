// Package instrumentation provides OpenTelemetry instrumentation for calendarctl.
//
// Instrumentation is off by default: a single CLI invocation lives for a
// fraction of a second and nothing scrapes it. When enabled it provides:
//   - OpenTelemetry metrics for commands, token refreshes and Google API calls
//   - Tracing spans for commands and API calls
//   - A Prometheus text-format dump on exit for node_exporter's textfile collector
//   - A /metrics endpoint while `calendarctl serve` is running
//
// # Metrics
//
// Google API Metrics:
//   - google_api_operations_total: Counter of API calls by service, method, status
//   - google_api_operation_duration_seconds: Histogram of API call durations
//
// OAuth Metrics:
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// Command Metrics:
//   - cli_command_invocations_total: Counter of commands by name, operation and status
//   - cli_command_duration_seconds: Histogram of command durations
//   - mcp_tool_invocations_total / mcp_tool_duration_seconds: the same for MCP tools
//
// # Tracing
//
// Spans are created for:
//   - command execution (command.<name>)
//   - MCP tool invocations (tool.<name>)
//   - Google API calls (google.<service>.<operation>)
//
// # Configuration
//
// Values come from the config package, which reads these environment variables:
//   - INSTRUMENTATION_ENABLED: Enable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - METRICS_TEXTFILE: Path of the Prometheus text dump written on exit
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - AUDIT_LOGGING_ENABLED: Log mutating commands (default: false)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, cfg.Instrumentation)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordCommand(ctx, "events.list", "list", "success", time.Since(start))
package instrumentation
