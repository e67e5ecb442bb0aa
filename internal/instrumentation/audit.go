package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Invocation captures one command execution for audit logging.
//
// Target carries calendar and event identifiers; it is only emitted when
// the audit logger is configured with IncludeTargets.
type Invocation struct {
	Command   string
	Service   string
	Operation string
	Method    string
	Target    string
	ReadOnly  bool

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewInvocation creates a new Invocation with timing started.
// Call Complete when the command finishes.
func NewInvocation(command string) *Invocation {
	return &Invocation{
		Command:   command,
		StartTime: time.Now(),
	}
}

// WithRequest sets the service, operation and HTTP request details.
func (inv *Invocation) WithRequest(service, operation, method, target string) *Invocation {
	inv.Service = service
	inv.Operation = operation
	inv.Method = method
	inv.Target = target
	inv.ReadOnly = method == "GET"
	return inv
}

// WithSpanContext extracts trace context from the current span.
func (inv *Invocation) WithSpanContext(ctx context.Context) *Invocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		inv.TraceID = span.SpanContext().TraceID().String()
		inv.SpanID = span.SpanContext().SpanID().String()
	}
	return inv
}

// Complete marks the invocation as finished and calculates its duration.
func (inv *Invocation) Complete(err error) *Invocation {
	inv.Duration = time.Since(inv.StartTime)
	inv.Success = err == nil
	if err != nil {
		inv.Error = err.Error()
	}
	return inv
}

// Status returns "success" or "error" based on the Success field.
func (inv *Invocation) Status() string {
	if inv.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
func (inv *Invocation) LogAttrs(includeTarget bool) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("command", inv.Command),
		slog.Duration("duration", inv.Duration),
		slog.Bool("success", inv.Success),
	}

	if inv.Service != "" {
		attrs = append(attrs, slog.String("service", inv.Service))
	}
	if inv.Operation != "" {
		attrs = append(attrs, slog.String("operation", inv.Operation))
	}
	if inv.Method != "" {
		attrs = append(attrs, slog.String("method", inv.Method))
	}
	if includeTarget && inv.Target != "" {
		attrs = append(attrs, slog.String("target", inv.Target))
	}
	if inv.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", inv.TraceID))
	}
	if inv.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", inv.SpanID))
	}
	if inv.Error != "" {
		attrs = append(attrs, slog.String("error", inv.Error))
	}

	return attrs
}

// AuditLogger writes audit records for commands that change data.
// Read-only commands are never audited.
type AuditLogger struct {
	logger         *slog.Logger
	includeTargets bool
	enabled        bool
}

// NewAuditLogger creates a new AuditLogger with the given configuration.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:         logger,
		includeTargets: config.IncludeTargets,
		enabled:        config.Enabled,
	}
}

// LogInvocation records inv when it is a mutating command.
func (al *AuditLogger) LogInvocation(ctx context.Context, inv *Invocation) {
	if al == nil || !al.enabled || inv.ReadOnly {
		return
	}

	attrs := inv.LogAttrs(al.includeTargets)
	if inv.Success {
		al.logger.LogAttrs(ctx, slog.LevelInfo, "command_audit", attrs...)
	} else {
		al.logger.LogAttrs(ctx, slog.LevelWarn, "command_audit_failed", attrs...)
	}
}
