package instrumentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Provider owns the meter and tracer providers of one process and the
// Metrics recorder built on them. A disabled Provider hands out a no-op
// recorder and leaves the global OpenTelemetry providers alone.
type Provider struct {
	config         Config
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	metrics        *Metrics

	// registry backs the prometheus exporter. It is private so repeated
	// providers in one process never collide on the default registry.
	registry *promclient.Registry
}

// NewProvider builds the exporters named by config and installs the
// resulting providers globally.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	p := &Provider{config: config, metrics: &Metrics{}}
	if !config.Enabled {
		return p, nil
	}

	res, err := newResource(ctx, config)
	if err != nil {
		return nil, err
	}

	reader, registry, err := newMetricReader(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}
	p.registry = registry
	p.meterProvider = metric.NewMeterProvider(metric.WithResource(res), metric.WithReader(reader))

	p.tracerProvider, err = newTracerProvider(ctx, config, res)
	if err != nil {
		if shutdownErr := p.meterProvider.Shutdown(ctx); shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to shutdown meter provider during cleanup: %w", shutdownErr))
		}
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}

	otel.SetMeterProvider(p.meterProvider)
	otel.SetTracerProvider(p.tracerProvider)

	p.metrics, err = NewMetrics(p.meterProvider.Meter(config.ServiceName))
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}
	return p, nil
}

func newResource(ctx context.Context, config Config) (*resource.Resource, error) {
	instance := config.ServiceInstanceID
	if instance == "" {
		instance, _ = os.Hostname()
	}

	attrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	}
	if instance != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceInstanceID(instance)))
	}

	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// newMetricReader returns the reader for config.MetricsExporter. The
// registry is only non-nil for the prometheus exporter.
func newMetricReader(ctx context.Context, config Config) (metric.Reader, *promclient.Registry, error) {
	switch config.MetricsExporter {
	case ExporterPrometheus, "":
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		return exporter, registry, nil

	case ExporterOTLP:
		if config.OTLPEndpoint == "" {
			return nil, nil, errors.New("OTLP endpoint is required for OTLP metrics exporter; set OTEL_EXPORTER_OTLP_ENDPOINT or use 'prometheus' exporter")
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.OTLPEndpoint)}
		if config.OTLPInsecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return metric.NewPeriodicReader(exporter, metric.WithInterval(DefaultMetricInterval)), nil, nil

	case ExporterStdout:
		// stdout carries command output.
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return metric.NewPeriodicReader(exporter, metric.WithInterval(DefaultMetricInterval)), nil, nil
	}

	return nil, nil, fmt.Errorf("unsupported metrics exporter: %s", config.MetricsExporter)
}

// newTracerProvider returns a never-sampling provider for the "none"
// exporter. Spans are exported synchronously because a CLI process usually
// ends right after its single command span.
func newTracerProvider(ctx context.Context, config Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter

	switch config.TracingExporter {
	case ExporterNone, "":
		return sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.NeverSample()),
		), nil

	case ExporterOTLP:
		if config.OTLPEndpoint == "" {
			return nil, errors.New("OTLP endpoint is required for OTLP tracing exporter")
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.OTLPEndpoint)}
		if config.OTLPInsecure {
			slog.Warn("OTLP insecure transport enabled; traces may contain calendar identifiers",
				"component", "instrumentation",
				"endpoint", config.OTLPEndpoint,
			)
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		var err error
		if exporter, err = otlptracehttp.New(ctx, opts...); err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}

	case ExporterStdout:
		var err error
		if exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr)); err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", config.TracingExporter)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.TraceSamplingRate))),
	), nil
}

// Metrics returns the recorder. It is never nil.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Gatherer returns the Prometheus registry, or nil for other exporters.
func (p *Provider) Gatherer() promclient.Gatherer {
	if p.registry == nil {
		return nil
	}
	return p.registry
}

// MetricsHandler serves the Prometheus registry, or is nil for other
// exporters.
func (p *Provider) MetricsHandler() http.Handler {
	if p.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry in Prometheus text format to path, for
// the node-exporter textfile collector.
func (p *Provider) WriteTextfile(path string) error {
	if p.registry == nil {
		return errors.New("metrics textfile requires the prometheus exporter")
	}
	return promclient.WriteToTextfile(path, p.registry)
}

// Shutdown writes the configured textfile and flushes both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}

	var errs []error
	if p.config.MetricsTextfile != "" {
		if err := p.WriteTextfile(p.config.MetricsTextfile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics textfile: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Enabled reports whether instrumentation is enabled.
func (p *Provider) Enabled() bool {
	return p.config.Enabled
}
