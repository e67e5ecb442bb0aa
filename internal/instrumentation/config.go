package instrumentation

import (
	"errors"
	"fmt"
	"time"
)

// Config selects the exporters and identity of the telemetry pipeline.
// The config package fills it from viper; DefaultConfig gives the defaults.
type Config struct {
	ServiceName    string
	ServiceVersion string

	// ServiceInstanceID defaults to the hostname.
	ServiceInstanceID string

	// Enabled is off by default: a one-shot invocation rarely has anyone
	// scraping it. INSTRUMENTATION_ENABLED=true turns it on.
	Enabled bool

	// MetricsExporter is prometheus, otlp or stdout.
	MetricsExporter string

	// TracingExporter is otlp, stdout or none.
	TracingExporter string

	// OTLPEndpoint is host:port of the collector, without a scheme.
	OTLPEndpoint string
	OTLPInsecure bool

	// TraceSamplingRate is in [0, 1].
	TraceSamplingRate float64

	// MetricsTextfile receives a Prometheus text dump on Shutdown, for a
	// node_exporter textfile collector directory.
	MetricsTextfile string

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the audit log of mutating commands.
type AuditLoggingConfig struct {
	Enabled bool

	// IncludeTargets adds request targets, which carry calendar and event
	// identifiers, to each record.
	IncludeTargets bool
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		ServiceName:       "calendarctl",
		ServiceVersion:    "unknown",
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 1.0,
	}
}

// Validate rejects unknown exporters, a sampling rate outside [0, 1] and
// combinations that cannot work (OTLP without endpoint, textfile without
// the prometheus exporter).
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return errors.New("OTLP endpoint is required when using OTLP metrics exporter")
		}
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return errors.New("OTLP endpoint is required when using OTLP tracing exporter")
		}
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.MetricsTextfile != "" && c.MetricsExporter != "" && c.MetricsExporter != ExporterPrometheus {
		return fmt.Errorf("metrics textfile requires the prometheus metrics exporter, got %q", c.MetricsExporter)
	}
	return nil
}

// Label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultExpired = "expired"

	ServiceCalendar = "calendar"
	ServiceTasks    = "tasks"
	ServiceOther    = "other"
)

// Exporter names.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// DefaultMetricInterval is the push interval of periodic metric readers.
const DefaultMetricInterval = 10 * time.Second
