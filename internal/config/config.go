package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "GCAL"

// Configuration keys. Flags bound with viper.BindPFlag use the same names.
const (
	KeyConfigFile      = "config"
	KeyTokenPath       = "token_path"
	KeyCalendarScopes  = "calendar_scopes"
	KeyTasksScopes     = "tasks_scopes"
	KeyCalendarBaseURL = "calendar_base_url"
	KeyTasksBaseURL    = "tasks_base_url"
	KeyLogLevel        = "log_level"
	KeyDebug           = "debug"

	keyInstrumentationEnabled = "instrumentation.enabled"
	keyMetricsExporter        = "instrumentation.metrics_exporter"
	keyMetricsTextfile        = "instrumentation.metrics_textfile"
	keyTracingExporter        = "instrumentation.tracing_exporter"
	keyOTLPEndpoint           = "instrumentation.otlp_endpoint"
	keyOTLPInsecure           = "instrumentation.otlp_insecure"
	keyTraceSamplingRate      = "instrumentation.trace_sampling_rate"
	keyServiceName            = "instrumentation.service_name"
	keyAuditEnabled           = "instrumentation.audit.enabled"
	keyAuditIncludeTargets    = "instrumentation.audit.include_targets"
)

// DirName is the directory below ~/.config holding the token and config files.
const DirName = "google-calendar"

// DefaultTokenPath is used when neither flag, environment nor config file set one.
var DefaultTokenPath = filepath.Join("~", ".config", DirName, "token.json")

// Config is the resolved configuration of one invocation.
type Config struct {
	// ConfigFile is the file the values were read from, if any.
	ConfigFile string

	TokenPath       string
	CalendarScopes  []string
	TasksScopes     []string
	CalendarBaseURL string
	TasksBaseURL    string
	LogLevel        string

	Instrumentation instrumentation.Config
}

// New returns a viper instance with defaults and environment bindings applied.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyTokenPath, DefaultTokenPath)
	v.SetDefault(KeyCalendarScopes, google.DefaultScopes(google.ServiceCalendar))
	v.SetDefault(KeyTasksScopes, google.DefaultScopes(google.ServiceTasks))
	v.SetDefault(KeyCalendarBaseURL, google.CalendarBaseURL)
	v.SetDefault(KeyTasksBaseURL, google.TasksBaseURL)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyDebug, false)

	defaults := instrumentation.DefaultConfig()
	v.SetDefault(keyInstrumentationEnabled, defaults.Enabled)
	v.SetDefault(keyMetricsExporter, defaults.MetricsExporter)
	v.SetDefault(keyTracingExporter, defaults.TracingExporter)
	v.SetDefault(keyTraceSamplingRate, defaults.TraceSamplingRate)
	v.SetDefault(keyServiceName, defaults.ServiceName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Instrumentation keeps the conventional unprefixed variable names.
	bindEnv(v, keyInstrumentationEnabled, "INSTRUMENTATION_ENABLED")
	bindEnv(v, keyMetricsExporter, "METRICS_EXPORTER")
	bindEnv(v, keyMetricsTextfile, "METRICS_TEXTFILE")
	bindEnv(v, keyTracingExporter, "TRACING_EXPORTER")
	bindEnv(v, keyOTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	bindEnv(v, keyOTLPInsecure, "OTEL_EXPORTER_OTLP_INSECURE")
	bindEnv(v, keyTraceSamplingRate, "OTEL_TRACES_SAMPLER_ARG")
	bindEnv(v, keyServiceName, "OTEL_SERVICE_NAME")
	bindEnv(v, keyAuditEnabled, "AUDIT_LOGGING_ENABLED")
	bindEnv(v, keyAuditIncludeTargets, "AUDIT_LOGGING_INCLUDE_TARGETS")

	return v
}

func bindEnv(v *viper.Viper, key, env string) {
	// BindEnv only fails when called without a key.
	_ = v.BindEnv(key, env)
}

// Load reads the optional config file and returns the merged configuration.
// Precedence, highest first: bound flags, environment, config file, defaults.
//
// An explicitly named config file must exist; the default one is optional.
func Load(v *viper.Viper) (*Config, error) {
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	level := v.GetString(KeyLogLevel)
	if v.GetBool(KeyDebug) {
		level = "debug"
	}

	cfg := &Config{
		ConfigFile:      v.ConfigFileUsed(),
		TokenPath:       strings.TrimSpace(v.GetString(KeyTokenPath)),
		CalendarScopes:  splitScopes(v.GetStringSlice(KeyCalendarScopes)),
		TasksScopes:     splitScopes(v.GetStringSlice(KeyTasksScopes)),
		CalendarBaseURL: strings.TrimRight(v.GetString(KeyCalendarBaseURL), "/"),
		TasksBaseURL:    strings.TrimRight(v.GetString(KeyTasksBaseURL), "/"),
		LogLevel:        level,
		Instrumentation: instrumentation.Config{
			ServiceName:       v.GetString(keyServiceName),
			ServiceVersion:    "unknown",
			Enabled:           v.GetBool(keyInstrumentationEnabled),
			MetricsExporter:   v.GetString(keyMetricsExporter),
			TracingExporter:   v.GetString(keyTracingExporter),
			OTLPEndpoint:      v.GetString(keyOTLPEndpoint),
			OTLPInsecure:      v.GetBool(keyOTLPInsecure),
			TraceSamplingRate: v.GetFloat64(keyTraceSamplingRate),
			MetricsTextfile:   v.GetString(keyMetricsTextfile),
			AuditLogging: instrumentation.AuditLoggingConfig{
				Enabled:        v.GetBool(keyAuditEnabled),
				IncludeTargets: v.GetBool(keyAuditIncludeTargets),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if explicit := v.GetString(KeyConfigFile); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory means no default config file; env and flags still apply.
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".config", DirName))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// splitScopes flattens comma separated entries, so both
// GCAL_TASKS_SCOPES="a b" and "a,b" work.
func splitScopes(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that every required value is present.
func (c *Config) Validate() error {
	if c.TokenPath == "" {
		return fmt.Errorf("token path must not be empty")
	}
	if c.CalendarBaseURL == "" {
		return fmt.Errorf("calendar base URL must not be empty")
	}
	if c.TasksBaseURL == "" {
		return fmt.Errorf("tasks base URL must not be empty")
	}
	if err := c.Instrumentation.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}
	return nil
}

// ScopesFor returns the configured scopes for svc.
func (c *Config) ScopesFor(svc google.Service) []string {
	var scopes []string
	switch svc {
	case google.ServiceTasks:
		scopes = c.TasksScopes
	default:
		scopes = c.CalendarScopes
	}
	if len(scopes) == 0 {
		return google.DefaultScopes(svc)
	}
	return append([]string(nil), scopes...)
}

// BaseURLFor returns the configured base URL for svc.
func (c *Config) BaseURLFor(svc google.Service) string {
	if svc == google.ServiceTasks {
		return c.TasksBaseURL
	}
	return c.CalendarBaseURL
}
