package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

type recordedOperation struct {
	service, method, status string
}

type fakeRecorder struct {
	ops []recordedOperation
}

func (f *fakeRecorder) RecordGoogleAPIOperation(_ context.Context, service, method, status string, _ time.Duration) {
	f.ops = append(f.ops, recordedOperation{service, method, status})
}

// newServer replies with the given status, content type and body and captures the request.
func newServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   string(data),
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func tokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access-1", TokenType: "Bearer"})
}

func TestDispatcher_Do_JSONSuccess(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "application/json; charset=UTF-8",
		`{"items":[{"id":"primary"}],"count":12345678901234567890}`)
	recorder := &fakeRecorder{}
	d := NewDispatcher(Config{Metrics: recorder, UserAgent: "calendarctl/test"})

	resp, err := d.Do(context.Background(), tokenSource(), Request{
		Method: "get",
		Target: "users/me/calendarList",
	}, srv.URL+"/calendar/v3")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": "primary"}},
		"count": json.Number("12345678901234567890"),
	}, resp.Payload)

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/calendar/v3/users/me/calendarList", captured.Path)
	assert.Equal(t, "Bearer access-1", captured.Header.Get("Authorization"))
	assert.True(t, strings.HasPrefix(captured.Header.Get("User-Agent"), "calendarctl/test "))
	assert.Empty(t, captured.Body)

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, recordedOperation{"calendar", "GET", "success"}, recorder.ops[0])
}

func TestDispatcher_Do_NoContentIgnoresBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusNoContent, "application/json", "")
	d := NewDispatcher(Config{})

	resp, err := d.Do(context.Background(), tokenSource(), Request{
		Method: "DELETE",
		Target: "/calendars/primary/events/e1",
	}, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "deleted"}, resp.Payload)
}

func TestDispatcher_Do_NonJSONSuccess(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "text/plain", "hello")
	d := NewDispatcher(Config{})

	resp, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/x"}, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "hello"}, resp.Payload)
}

func TestDispatcher_Do_JSONError(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, "application/json",
		`{"error":{"code":404,"message":"Not Found"}}`)
	recorder := &fakeRecorder{}
	d := NewDispatcher(Config{Metrics: recorder})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/calendars/x"}, srv.URL+"/calendar/v3")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, map[string]any{
		"error": map[string]any{"code": json.Number("404"), "message": "Not Found"},
	}, apiErr.Payload)
	assert.Equal(t, "HTTP 404: {\n  \"error\": {\n    \"code\": 404,\n    \"message\": \"Not Found\"\n  }\n}", err.Error())

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "error", recorder.ops[0].status)
}

func TestDispatcher_Do_TextError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, "text/html", "<b>oops</b>")
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/x"}, srv.URL)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, map[string]any{"error": "<b>oops</b>"}, apiErr.Payload)
	assert.Equal(t, "HTTP 500: {\n  \"error\": \"<b>oops</b>\"\n}", err.Error())
}

func TestDispatcher_Do_JSONNullError(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, "application/json", "null")
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/x"}, srv.URL)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Nil(t, apiErr.Payload)
	assert.Equal(t, "HTTP 400: null", err.Error())
}

func TestDispatcher_Do_MalformedJSONErrorFallsBackToText(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, "application/json; charset=UTF-8", "{broken")
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/x"}, srv.URL)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, map[string]any{"error": "{broken"}, apiErr.Payload)
}

func TestDispatcher_Do_AbsoluteTargetBypassesBase(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "application/json", `{}`)
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{
		Method: "GET",
		Target: srv.URL + "/tasks/v1/users/@me/lists",
	}, "https://unused.invalid/calendar/v3")
	require.NoError(t, err)
	assert.Equal(t, "/tasks/v1/users/@me/lists", captured.Path)
}

func TestDispatcher_Do_QueryAndBody(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "application/json", `{"id":"e1"}`)
	d := NewDispatcher(Config{})

	var params Params
	params.Add("timeMin", "2024-01-01T00:00:00Z")
	params.Add("singleEvents", true)
	params.Add("maxResults", json.Number("10"))
	params.Add("eventTypes", []any{"default", "focusTime"})
	params.Add("skipped", nil)

	_, err := d.Do(context.Background(), tokenSource(), Request{
		Method: "POST",
		Target: "/calendars/primary/events?conferenceDataVersion=1",
		Params: params,
		Body:   map[string]any{"summary": "A & B"},
	}, srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z", captured.Query.Get("timeMin"))
	assert.Equal(t, "true", captured.Query.Get("singleEvents"))
	assert.Equal(t, "10", captured.Query.Get("maxResults"))
	assert.Equal(t, []string{"default", "focusTime"}, captured.Query["eventTypes"])
	assert.Equal(t, "1", captured.Query.Get("conferenceDataVersion"))
	_, hasSkipped := captured.Query["skipped"]
	assert.False(t, hasSkipped)

	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"summary":"A & B"}`, captured.Body)
	assert.Contains(t, captured.Body, "A & B")
}

func TestDispatcher_Do_EmptyObjectBodyIsSent(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "application/json", `{}`)
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{
		Method: "POST",
		Target: "/lists/l1/clear",
		Body:   map[string]any{},
	}, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", captured.Body)
}

func TestDispatcher_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	recorder := &fakeRecorder{}
	d := NewDispatcher(Config{Metrics: recorder})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "GET", Target: "/x"}, base)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "GET", transportErr.Method)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "error", recorder.ops[0].status)
}

func TestDispatcher_Do_CancelledContext(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "application/json", `{}`)
	d := NewDispatcher(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Do(ctx, tokenSource(), Request{Method: "GET", Target: "/x"}, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatcher_Do_UnsupportedMethod(t *testing.T) {
	d := NewDispatcher(Config{})

	_, err := d.Do(context.Background(), tokenSource(), Request{Method: "TRACE", Target: "/x"}, "http://127.0.0.1")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
