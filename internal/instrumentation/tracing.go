package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the calendarctl packages.
const TracerName = "github.com/teemow/calendarctl"

// Span attribute keys for operations.
const (
	// SpanAttrCommand is the CLI command (or MCP tool) name attribute.
	SpanAttrCommand = "cli.command"

	// SpanAttrTool is the MCP tool name attribute.
	SpanAttrTool = "mcp.tool"

	// SpanAttrService is the Google service name attribute.
	SpanAttrService = "google.service"

	// SpanAttrOperation is the operation type attribute.
	SpanAttrOperation = "google.operation"

	// SpanAttrStatusCode is the HTTP status code returned by the API.
	SpanAttrStatusCode = "http.response.status_code"

	// SpanAttrResourceID is the resource identifier (calendar, event, task list or task ID).
	SpanAttrResourceID = "google.resource_id"

	// SpanAttrReadOnly indicates if the operation is read-only.
	SpanAttrReadOnly = "google.read_only"
)

// SpanAttributeBuilder collects span attributes under the keys above.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{attrs: make([]attribute.KeyValue, 0, 5)}
}

// WithCommand adds the command name attribute.
func (b *SpanAttributeBuilder) WithCommand(command string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrCommand, command))
	return b
}

// WithService adds the Google service name attribute.
func (b *SpanAttributeBuilder) WithService(service string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrService, service))
	return b
}

// WithOperation adds the operation type attribute.
func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// WithResourceID adds the resource identifier, skipping empty values.
func (b *SpanAttributeBuilder) WithResourceID(id string) *SpanAttributeBuilder {
	if id != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrResourceID, id))
	}
	return b
}

// WithReadOnly adds the read-only indicator attribute.
func (b *SpanAttributeBuilder) WithReadOnly(readOnly bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrReadOnly, readOnly))
	return b
}

// Build returns the collected attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartCommandSpan starts the root span of one command execution,
// named command.<command>.
func StartCommandSpan(ctx context.Context, command string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, "command."+command, trace.SpanKindInternal,
		attribute.String(SpanAttrCommand, command), attrs)
}

// StartToolSpan starts the span of an MCP tool invocation, named tool.<name>.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, "tool."+toolName, trace.SpanKindServer,
		attribute.String(SpanAttrTool, toolName), attrs)
}

// StartGoogleAPISpan starts the client span of one API request, named
// google.<service>.<operation>.
func StartGoogleAPISpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, "google."+service+"."+operation, trace.SpanKindClient,
		attribute.String(SpanAttrService, service),
		append([]attribute.KeyValue{attribute.String(SpanAttrOperation, operation)}, attrs...))
}

func startSpan(ctx context.Context, name string, kind trace.SpanKind, first attribute.KeyValue, rest []attribute.KeyValue) (context.Context, trace.Span) {
	attrs := append([]attribute.KeyValue{first}, rest...)
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(kind),
	)
}

// SetSpanError marks span as failed with err. A nil err leaves it untouched.
func SetSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess marks span as succeeded.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// TraceID returns the trace ID of the span in ctx, or "" without a
// recording span.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
