package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return provider
}

// gatheredCount sums the counter samples of the named family.
func gatheredCount(t *testing.T, p *Provider, name string) float64 {
	t.Helper()

	families, err := p.Gatherer().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_RecordGoogleAPIOperation(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	metrics := provider.Metrics()
	metrics.RecordGoogleAPIOperation(ctx, ServiceCalendar, "GET", StatusSuccess, 200*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceTasks, "POST", StatusError, 500*time.Millisecond)

	if got := gatheredCount(t, provider, "google_api_operations_total"); got != 2 {
		t.Errorf("expected 2 API operations, got %v", got)
	}
}

func TestMetrics_RecordOAuthTokenRefresh(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	metrics := provider.Metrics()
	metrics.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	metrics.RecordOAuthTokenRefresh(ctx, OAuthResultFailure)
	metrics.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)

	if got := gatheredCount(t, provider, "oauth_token_refresh_total"); got != 3 {
		t.Errorf("expected 3 refresh attempts, got %v", got)
	}
}

func TestMetrics_RecordCommand(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	provider.Metrics().RecordCommand(ctx, "tasks.create", OperationCreate, StatusSuccess, time.Second)

	if got := gatheredCount(t, provider, "cli_command_invocations_total"); got != 1 {
		t.Errorf("expected 1 command invocation, got %v", got)
	}
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	provider.Metrics().RecordToolInvocation(ctx, "calendar_list_events", StatusSuccess, 100*time.Millisecond)
	provider.Metrics().RecordToolInvocation(ctx, "tasks_create_task", StatusError, 50*time.Millisecond)

	if got := gatheredCount(t, provider, "mcp_tool_invocations_total"); got != 2 {
		t.Errorf("expected 2 tool invocations, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	var nilMetrics *Metrics
	nilMetrics.RecordCommand(ctx, "events.list", OperationList, StatusSuccess, time.Second)
	nilMetrics.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)

	empty := &Metrics{}
	empty.RecordGoogleAPIOperation(ctx, ServiceCalendar, "GET", StatusSuccess, time.Second)
	empty.RecordToolInvocation(ctx, "x", StatusSuccess, time.Second)
}
