package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/config"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

type fakeTokens struct {
	calls  int
	path   string
	scopes []string
	err    error
}

func (f *fakeTokens) Load(_ context.Context, path string, scopes []string) (*google.Credential, error) {
	f.calls++
	f.path = path
	f.scopes = scopes
	if f.err != nil {
		return nil, f.err
	}
	return &google.Credential{AccessToken: "access-1"}, nil
}

type fakeDispatcher struct {
	calls   int
	req     api.Request
	baseURL string
	token   string
	resp    *api.Response
	err     error
}

func (f *fakeDispatcher) Do(_ context.Context, ts oauth2.TokenSource, req api.Request, baseURL string) (*api.Response, error) {
	f.calls++
	f.req = req
	f.baseURL = baseURL
	if tok, err := ts.Token(); err == nil {
		f.token = tok.AccessToken
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &api.Response{StatusCode: 200, Payload: map[string]any{"id": "x"}}, nil
}

type commandRecord struct {
	command, operation, status string
}

type fakeRecorder struct {
	records []commandRecord
}

func (f *fakeRecorder) RecordCommand(_ context.Context, command, operation, status string, _ time.Duration) {
	f.records = append(f.records, commandRecord{command, operation, status})
}

func testSettings() *config.Config {
	return &config.Config{
		TokenPath:       "/home/user/.config/google-calendar/token.json",
		CalendarBaseURL: "https://calendar.example.test/calendar/v3",
		TasksBaseURL:    "https://tasks.example.test/tasks/v1",
		TasksScopes:     []string{"https://www.googleapis.com/auth/tasks.readonly"},
	}
}

func newTestRunner(t *testing.T, tokens *fakeTokens, d *fakeDispatcher, rec *fakeRecorder, audit *instrumentation.AuditLogger) *Runner {
	t.Helper()
	cfg := Config{
		Settings:   testSettings(),
		Tokens:     tokens,
		Dispatcher: d,
		Audit:      audit,
	}
	if rec != nil {
		cfg.Metrics = rec
	}
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{Tokens: &fakeTokens{}, Dispatcher: &fakeDispatcher{}})
	assert.Error(t, err)

	_, err = New(Config{Settings: testSettings(), Dispatcher: &fakeDispatcher{}})
	assert.Error(t, err)

	_, err = New(Config{Settings: testSettings(), Tokens: &fakeTokens{}})
	assert.Error(t, err)
}

func TestRun_UsesConfiguredDefaults(t *testing.T) {
	tokens := &fakeTokens{}
	d := &fakeDispatcher{}
	rec := &fakeRecorder{}
	r := newTestRunner(t, tokens, d, rec, nil)

	payload, err := r.Run(context.Background(), command.ListTaskLists{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "x"}, payload)

	assert.Equal(t, "/home/user/.config/google-calendar/token.json", tokens.path)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/tasks.readonly"}, tokens.scopes)
	assert.Equal(t, "https://tasks.example.test/tasks/v1", d.baseURL)
	assert.Equal(t, "/users/@me/lists", d.req.Target)
	assert.Equal(t, "tasklists.list", d.req.Operation)
	assert.Equal(t, "access-1", d.token)

	require.Len(t, rec.records, 1)
	assert.Equal(t, commandRecord{"tasklists.list", instrumentation.OperationList, instrumentation.StatusSuccess}, rec.records[0])
}

func TestRun_AuthOverridesDefaults(t *testing.T) {
	tokens := &fakeTokens{}
	d := &fakeDispatcher{}
	r := newTestRunner(t, tokens, d, nil, nil)

	_, err := r.Run(context.Background(), command.ListCalendars{
		Auth: command.Auth{TokenPath: "/tmp/other.json", Scopes: []string{"scope-a"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.json", tokens.path)
	assert.Equal(t, []string{"scope-a"}, tokens.scopes)
	assert.Equal(t, "https://calendar.example.test/calendar/v3", d.baseURL)
}

func TestRun_CalendarScopesDefaultWhenUnconfigured(t *testing.T) {
	tokens := &fakeTokens{}
	r := newTestRunner(t, tokens, &fakeDispatcher{}, nil, nil)

	_, err := r.Run(context.Background(), command.ListCalendars{})
	require.NoError(t, err)
	assert.Equal(t, google.DefaultCalendarScopes, tokens.scopes)
}

func TestRun_UsageErrorBeforeCredential(t *testing.T) {
	tokens := &fakeTokens{}
	d := &fakeDispatcher{}
	rec := &fakeRecorder{}
	r := newTestRunner(t, tokens, d, rec, nil)

	_, err := r.Run(context.Background(), command.UpdateTask{TaskListID: "tl", TaskID: "t1"})
	assert.ErrorIs(t, err, builder.ErrNoUpdateFieldsProvided)
	assert.Zero(t, tokens.calls)
	assert.Zero(t, d.calls)
	assert.Empty(t, rec.records)
}

func TestRun_CredentialErrorStopsBeforeDispatch(t *testing.T) {
	tokens := &fakeTokens{err: &google.CredentialError{Path: "/x", Err: google.ErrCredentialFileMissing}}
	d := &fakeDispatcher{}
	rec := &fakeRecorder{}
	r := newTestRunner(t, tokens, d, rec, nil)

	_, err := r.Run(context.Background(), command.ListCalendars{})
	assert.ErrorIs(t, err, google.ErrCredentialFileMissing)
	assert.Zero(t, d.calls)

	require.Len(t, rec.records, 1)
	assert.Equal(t, instrumentation.StatusError, rec.records[0].status)
}

func TestRun_APIErrorIsReturned(t *testing.T) {
	apiErr := &api.APIError{StatusCode: 404, Payload: map[string]any{"error": "not found"}}
	r := newTestRunner(t, &fakeTokens{}, &fakeDispatcher{err: apiErr}, nil, nil)

	_, err := r.Run(context.Background(), command.GetEvent{CalendarID: "primary", EventID: "missing"})
	var got *api.APIError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 404, got.StatusCode)
}

func TestRun_AuditsMutatingCommandsOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	audit := instrumentation.NewAuditLogger(logger, instrumentation.AuditLoggingConfig{Enabled: true})

	d := &fakeDispatcher{resp: &api.Response{StatusCode: 204, Payload: map[string]any{"status": "deleted"}}}
	r := newTestRunner(t, &fakeTokens{}, d, nil, audit)

	_, err := r.Run(context.Background(), command.ListEvents{CalendarID: "primary", TimeMin: "a", TimeMax: "b"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	payload, err := r.Run(context.Background(), command.DeleteEvent{CalendarID: "primary", EventID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "deleted"}, payload)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "command_audit", record["msg"])
	assert.Equal(t, "events.delete", record["command"])
	assert.Equal(t, "DELETE", record["method"])
	assert.NotContains(t, record, "target")
}

func TestRun_AuditsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	audit := instrumentation.NewAuditLogger(logger, instrumentation.AuditLoggingConfig{Enabled: true, IncludeTargets: true})

	r := newTestRunner(t, &fakeTokens{}, &fakeDispatcher{err: errors.New("boom")}, nil, audit)
	_, err := r.Run(context.Background(), command.ClearTasks{TaskListID: "tl"})
	require.Error(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "command_audit_failed", record["msg"])
	assert.Equal(t, "/lists/tl/clear", record["target"])
	assert.Equal(t, "boom", record["error"])
}

func TestRun_EndToEnd(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		_, _ = w.Write([]byte(`{"items": [{"id": "e1", "summary": "Standup"}]}`))
	}))
	t.Cleanup(srv.Close)

	cred, err := json.Marshal(map[string]any{
		"token":         "access-1",
		"refresh_token": "refresh-1",
		"client_id":     "client-id",
		"client_secret": "secret",
		"token_uri":     srv.URL + "/token",
		"expiry":        time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(tokenPath, cred, 0o600))

	settings := testSettings()
	settings.TokenPath = tokenPath
	settings.CalendarBaseURL = srv.URL + "/calendar/v3"

	r, err := New(Config{
		Settings:   settings,
		Tokens:     google.NewStore(google.StoreConfig{}),
		Dispatcher: api.NewDispatcher(api.Config{UserAgent: "calendarctl/test"}),
	})
	require.NoError(t, err)

	payload, err := r.Run(context.Background(), command.ListEvents{
		CalendarID:   "primary",
		TimeMin:      "2024-06-01T00:00:00Z",
		TimeMax:      "2024-06-02T00:00:00Z",
		SingleEvents: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.Equal(t, "/calendar/v3/calendars/primary/events", gotPath)
	assert.Contains(t, gotQuery, "singleEvents=true")
	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": "e1", "summary": "Standup"}},
	}, payload)
}
