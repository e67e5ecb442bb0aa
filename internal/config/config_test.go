package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calendarctl/internal/google"
)

// isolate points HOME at an empty directory so no real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, DefaultTokenPath, cfg.TokenPath)
	assert.Equal(t, google.CalendarBaseURL, cfg.CalendarBaseURL)
	assert.Equal(t, google.TasksBaseURL, cfg.TasksBaseURL)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/calendar"}, cfg.ScopesFor(google.ServiceCalendar))
	assert.Equal(t, []string{"https://www.googleapis.com/auth/tasks"}, cfg.ScopesFor(google.ServiceTasks))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ConfigFile)
	assert.False(t, cfg.Instrumentation.Enabled)
	assert.Equal(t, "calendarctl", cfg.Instrumentation.ServiceName)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("GCAL_TOKEN_PATH", "/tmp/token.json")
	t.Setenv("GCAL_TASKS_SCOPES", "scope-a,scope-b")
	t.Setenv("GCAL_CALENDAR_SCOPES", "scope-c scope-d")
	t.Setenv("GCAL_CALENDAR_BASE_URL", "http://127.0.0.1:9999/calendar/v3/")
	t.Setenv("GCAL_LOG_LEVEL", "info")
	t.Setenv("INSTRUMENTATION_ENABLED", "true")
	t.Setenv("METRICS_TEXTFILE", "/tmp/calendarctl.prom")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/token.json", cfg.TokenPath)
	assert.Equal(t, []string{"scope-a", "scope-b"}, cfg.TasksScopes)
	assert.Equal(t, []string{"scope-c", "scope-d"}, cfg.CalendarScopes)
	assert.Equal(t, "http://127.0.0.1:9999/calendar/v3", cfg.BaseURLFor(google.ServiceCalendar))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Instrumentation.Enabled)
	assert.Equal(t, "/tmp/calendarctl.prom", cfg.Instrumentation.MetricsTextfile)
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", DirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
token_path: /srv/token.json
tasks_base_url: http://localhost:8080/tasks/v1
instrumentation:
  enabled: true
  tracing_exporter: stdout
`), 0o600))

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "/srv/token.json", cfg.TokenPath)
	assert.Equal(t, "http://localhost:8080/tasks/v1", cfg.TasksBaseURL)
	assert.True(t, cfg.Instrumentation.Enabled)
	assert.Equal(t, "stdout", cfg.Instrumentation.TracingExporter)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", DirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("token_path: /from/file.json\n"), 0o600))
	t.Setenv("GCAL_TOKEN_PATH", "/from/env.json")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.TokenPath)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GCAL_TOKEN_PATH", "/from/env.json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("token", "", "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--token", "/from/flag.json", "--debug"}))

	v := New()
	require.NoError(t, v.BindPFlag(KeyTokenPath, flags.Lookup("token")))
	require.NoError(t, v.BindPFlag(KeyDebug, flags.Lookup("debug")))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", cfg.TokenPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	isolate(t)
	t.Setenv("GCAL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidInstrumentation(t *testing.T) {
	isolate(t)
	t.Setenv("TRACING_EXPORTER", "zipkin")

	_, err := Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid instrumentation config")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		TokenPath:       "~/token.json",
		CalendarBaseURL: google.CalendarBaseURL,
		TasksBaseURL:    google.TasksBaseURL,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty token path", func(c *Config) { c.TokenPath = "" }, "token path"},
		{"empty calendar base", func(c *Config) { c.CalendarBaseURL = "" }, "calendar base URL"},
		{"empty tasks base", func(c *Config) { c.TasksBaseURL = "" }, "tasks base URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScopesFor_ReturnsCopy(t *testing.T) {
	c := &Config{TasksScopes: []string{"a"}}
	got := c.ScopesFor(google.ServiceTasks)
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, c.TasksScopes)
}
