package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithCommand("events.get").
		WithService(ServiceCalendar).
		WithOperation(OperationGet).
		WithResourceID("evt-1").
		WithReadOnly(true).
		Build()

	if len(attrs) != 5 {
		t.Errorf("expected 5 attributes, got %d", len(attrs))
	}

	attrMap := make(map[string]interface{})
	for _, attr := range attrs {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}

	if attrMap[SpanAttrCommand] != "events.get" {
		t.Errorf("expected command 'events.get', got %v", attrMap[SpanAttrCommand])
	}
	if attrMap[SpanAttrService] != ServiceCalendar {
		t.Errorf("expected service 'calendar', got %v", attrMap[SpanAttrService])
	}
	if attrMap[SpanAttrResourceID] != "evt-1" {
		t.Errorf("expected resource id 'evt-1', got %v", attrMap[SpanAttrResourceID])
	}
	if attrMap[SpanAttrReadOnly] != true {
		t.Errorf("expected read_only true, got %v", attrMap[SpanAttrReadOnly])
	}
}

func TestSpanAttributeBuilder_EmptyResourceID(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithCommand("calendars.list").
		WithResourceID("").
		Build()

	if len(attrs) != 1 {
		t.Errorf("expected 1 attribute, got %d", len(attrs))
	}
}

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestStartGoogleAPISpan(t *testing.T) {
	recorder := installRecorder(t)

	ctx, span := StartGoogleAPISpan(context.Background(), ServiceTasks, OperationList)
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID in span context")
	}
	SetSpanSuccess(span)
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != "google.tasks.list" {
		t.Errorf("expected span name 'google.tasks.list', got %q", ended[0].Name())
	}
	if ended[0].Status().Code != codes.Ok {
		t.Errorf("expected OK status, got %v", ended[0].Status().Code)
	}
}

func TestStartCommandSpan_Error(t *testing.T) {
	recorder := installRecorder(t)

	_, span := StartCommandSpan(context.Background(), "events.create")
	SetSpanError(span, errors.New("HTTP 403"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != "command.events.create" {
		t.Errorf("expected span name 'command.events.create', got %q", ended[0].Name())
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status().Code)
	}
	if ended[0].Status().Description != "HTTP 403" {
		t.Errorf("expected description 'HTTP 403', got %q", ended[0].Status().Description)
	}
}

func TestSetSpanError_Nil(t *testing.T) {
	recorder := installRecorder(t)

	_, span := StartToolSpan(context.Background(), "calendar_list_events")
	SetSpanError(span, nil)
	span.End()

	if got := recorder.Ended()[0].Status().Code; got != codes.Unset {
		t.Errorf("expected unset status for nil error, got %v", got)
	}
}

func TestTraceID_NoSpan(t *testing.T) {
	if id := TraceID(context.Background()); id != "" {
		t.Errorf("expected empty trace ID, got %q", id)
	}
}
