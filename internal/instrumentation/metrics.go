package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrCommand   = "command"
	attrTool      = "tool"
)

var durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// timed is a counter paired with a duration histogram sharing attributes.
// Its zero value records nothing.
type timed struct {
	total   metric.Int64Counter
	seconds metric.Float64Histogram
}

// newTimed registers the counter totalName and the histogram durationName.
func newTimed(meter metric.Meter, totalName, durationName, what, unit string) (timed, error) {
	var (
		t   timed
		err error
	)
	t.total, err = meter.Int64Counter(totalName,
		metric.WithDescription("Total number of "+what),
		metric.WithUnit(unit),
	)
	if err != nil {
		return timed{}, fmt.Errorf("failed to create %s counter: %w", totalName, err)
	}
	t.seconds, err = meter.Float64Histogram(durationName,
		metric.WithDescription("Duration in seconds of "+what),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return timed{}, fmt.Errorf("failed to create %s histogram: %w", durationName, err)
	}
	return t, nil
}

func (t timed) record(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	if t.total == nil || t.seconds == nil {
		return
	}
	opt := metric.WithAttributes(attrs...)
	t.total.Add(ctx, 1, opt)
	t.seconds.Record(ctx, d.Seconds(), opt)
}

// Metrics records API calls, token refreshes, commands and MCP tool calls.
// The zero value and a nil *Metrics are no-op recorders.
type Metrics struct {
	googleAPI    timed
	commands     timed
	tools        timed
	tokenRefresh metric.Int64Counter
}

// NewMetrics registers every instrument on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	if m.googleAPI, err = newTimed(meter,
		"google_api_operations_total", "google_api_operation_duration_seconds",
		"Google API operations", "{operation}"); err != nil {
		return nil, err
	}
	if m.commands, err = newTimed(meter,
		"cli_command_invocations_total", "cli_command_duration_seconds",
		"CLI command invocations, including credential loading", "{invocation}"); err != nil {
		return nil, err
	}
	if m.tools, err = newTimed(meter,
		"mcp_tool_invocations_total", "mcp_tool_duration_seconds",
		"MCP tool invocations", "{invocation}"); err != nil {
		return nil, err
	}

	m.tokenRefresh, err = meter.Int64Counter("oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordGoogleAPIOperation records one HTTP exchange with a Google API.
// service is calendar, tasks or other; status is "success" or "error".
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.googleAPI.record(ctx, duration,
		attribute.String(attrService, service),
		attribute.String(attrMethod, method),
		attribute.String(attrStatus, status),
	)
}

// RecordOAuthTokenRefresh records a refresh attempt. result is one of
// "success", "failure" or "expired".
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.tokenRefresh == nil {
		return
	}
	m.tokenRefresh.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordCommand records one command execution, from credential load to response.
func (m *Metrics) RecordCommand(ctx context.Context, command, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.commands.record(ctx, duration,
		attribute.String(attrCommand, command),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
}

// RecordToolInvocation records one MCP tool call.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.tools.record(ctx, duration,
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
}
