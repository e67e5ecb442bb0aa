package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/teemow/calendarctl/internal/instrumentation"
	"github.com/teemow/calendarctl/internal/logging"
)

// Response is a classified, successful API response.
type Response struct {
	StatusCode  int
	ContentType string

	// Payload is the decoded JSON body, {"status": "deleted"} for 204,
	// or {"text": raw} for non-JSON bodies.
	Payload any
}

// OperationRecorder receives one record per API call.
type OperationRecorder interface {
	RecordGoogleAPIOperation(ctx context.Context, service, method, status string, duration time.Duration)
}

// Config holds the collaborators of a Dispatcher.
type Config struct {
	// HTTPClient is the base client (default: a client on http.DefaultTransport).
	// Its transport is wrapped for tracing and bearer authorization.
	HTTPClient *http.Client

	// Logger receives debug output (default: slog.Default()).
	Logger *slog.Logger

	// Metrics records each call; may be nil.
	Metrics OperationRecorder

	// UserAgent is prepended to the Google client user agent.
	UserAgent string
}

// Dispatcher sends authorized requests and classifies their responses.
type Dispatcher struct {
	client    *http.Client
	logger    *slog.Logger
	metrics   OperationRecorder
	userAgent string
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ua := googleapi.UserAgent
	if cfg.UserAgent != "" {
		ua = cfg.UserAgent + " " + ua
	}
	return &Dispatcher{
		client:    client,
		logger:    logger,
		metrics:   cfg.Metrics,
		userAgent: ua,
	}
}

// Do sends req once, authorized by tokens from ts. A relative req.Target is
// joined onto baseURL.
func (d *Dispatcher) Do(ctx context.Context, ts oauth2.TokenSource, req Request, baseURL string) (*Response, error) {
	method, err := NormalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}

	rawURL := ResolveURL(baseURL, req.Target)
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}
	if len(req.Params) > 0 {
		extra, err := req.Params.Values()
		if err != nil {
			return nil, err
		}
		query := u.Query()
		for key, values := range extra {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(req.Body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = &buf
	}

	service := instrumentation.ServiceFromURL(u.String())
	operation := req.Operation
	if operation == "" {
		operation = instrumentation.OperationFromMethod(method)
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, service, operation)
	defer span.End()

	logger := logging.WithService(d.logger, service).With(logging.Operation(operation))
	start := time.Now()

	resp, err := d.send(ctx, ts, method, u.String(), body)
	duration := time.Since(start)
	if err != nil {
		d.record(ctx, service, method, instrumentation.StatusError, duration)
		instrumentation.SetSpanError(span, err)
		logger.Debug("api request failed", slog.String("method", method), slog.String("url", u.Redacted()),
			logging.Duration(duration), logging.Err(err))
		return nil, err
	}

	status := instrumentation.StatusSuccess
	if resp.StatusCode >= 400 {
		status = instrumentation.StatusError
	}
	d.record(ctx, service, method, status, duration)
	logger.Debug("api request",
		slog.String("method", method),
		slog.String("url", u.Redacted()),
		slog.Int("status_code", resp.StatusCode),
		logging.Duration(duration),
	)

	result, err := classify(resp)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	instrumentation.SetSpanSuccess(span)
	return result, nil
}

type rawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (d *Dispatcher) send(ctx context.Context, ts oauth2.TokenSource, method, rawURL string, body io.Reader) (*rawResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", d.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.authorizedClient(ts).Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &rawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// authorizedClient layers bearer authorization and tracing over the base client.
func (d *Dispatcher) authorizedClient(ts oauth2.TokenSource) *http.Client {
	base := d.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client := *d.client
	client.Transport = &oauth2.Transport{
		Source: ts,
		Base:   otelhttp.NewTransport(base),
	}
	return &client
}

func (d *Dispatcher) record(ctx context.Context, service, method, status string, duration time.Duration) {
	if d.metrics != nil {
		d.metrics.RecordGoogleAPIOperation(ctx, service, method, status, duration)
	}
}

// classify turns a raw response into a Response or an *APIError.
func classify(resp *rawResponse) (*Response, error) {
	isJSON := strings.Contains(resp.ContentType, "application/json")

	if resp.StatusCode >= 400 {
		if isJSON {
			if v, err := decode(resp.Body); err == nil {
				return nil, &APIError{StatusCode: resp.StatusCode, Payload: v}
			}
		}
		// Bodies that are not JSON, or do not parse, are reported as text.
		return nil, &APIError{StatusCode: resp.StatusCode, Payload: map[string]any{"error": string(resp.Body)}}
	}

	result := &Response{StatusCode: resp.StatusCode, ContentType: resp.ContentType}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		result.Payload = map[string]any{"status": "deleted"}
	case isJSON && len(bytes.TrimSpace(resp.Body)) > 0:
		v, err := decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %d response: %w", resp.StatusCode, err)
		}
		result.Payload = v
	default:
		result.Payload = map[string]any{"text": string(resp.Body)}
	}
	return result, nil
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
