package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/config"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
	"github.com/teemow/calendarctl/internal/logging"
)

// Dispatcher sends one request. *api.Dispatcher implements it.
type Dispatcher interface {
	Do(ctx context.Context, ts oauth2.TokenSource, req api.Request, baseURL string) (*api.Response, error)
}

// CommandRecorder receives one record per executed command.
type CommandRecorder interface {
	RecordCommand(ctx context.Context, command, operation, status string, duration time.Duration)
}

// Config holds the collaborators of a Runner.
type Config struct {
	// Settings supplies the token path, scopes and base URLs used when a
	// command does not name its own.
	Settings *config.Config

	Tokens     google.TokenProvider
	Dispatcher Dispatcher

	// Metrics and Audit may be nil.
	Metrics CommandRecorder
	Audit   *instrumentation.AuditLogger

	// Logger receives debug output (default: slog.Default()).
	Logger *slog.Logger
}

// Runner executes typed commands: it builds the request, loads the
// credential and dispatches.
type Runner struct {
	settings   *config.Config
	tokens     google.TokenProvider
	dispatcher Dispatcher
	metrics    CommandRecorder
	audit      *instrumentation.AuditLogger
	logger     *slog.Logger
}

// New creates a Runner.
func New(cfg Config) (*Runner, error) {
	switch {
	case cfg.Settings == nil:
		return nil, errors.New("runner: settings are required")
	case cfg.Tokens == nil:
		return nil, errors.New("runner: token provider is required")
	case cfg.Dispatcher == nil:
		return nil, errors.New("runner: dispatcher is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		settings:   cfg.Settings,
		tokens:     cfg.Tokens,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		audit:      cfg.Audit,
		logger:     logger,
	}, nil
}

// Run executes c and returns the response payload.
//
// Input problems are reported before the credential is read. The
// credential is loaded (and refreshed if needed) once per call, and the
// request is sent exactly once.
func (r *Runner) Run(ctx context.Context, c command.Command) (any, error) {
	plan, err := command.Build(c)
	if err != nil {
		return nil, err
	}

	readOnly := plan.Request.Method == "GET"
	ctx, span := instrumentation.StartCommandSpan(ctx, plan.Name,
		instrumentation.NewSpanAttributeBuilder().
			WithService(string(plan.Service)).
			WithOperation(plan.Operation).
			WithReadOnly(readOnly).
			Build()...,
	)
	defer span.End()

	inv := instrumentation.NewInvocation(plan.Name).
		WithRequest(string(plan.Service), plan.Operation, plan.Request.Method, plan.Request.Target).
		WithSpanContext(ctx)

	payload, err := r.execute(ctx, c.Credentials(), plan)

	inv.Complete(err)
	if r.metrics != nil {
		r.metrics.RecordCommand(ctx, plan.Name, plan.Operation, inv.Status(), inv.Duration)
	}
	r.audit.LogInvocation(ctx, inv)

	logger := logging.WithCommand(r.logger, plan.Name)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		logger.Debug("command failed", logging.Duration(inv.Duration), logging.Err(err))
		return nil, err
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().WithResourceID(resourceID(payload)).Build()...)
	instrumentation.SetSpanSuccess(span)
	logger.Debug("command completed", logging.Duration(inv.Duration))
	return payload, nil
}

func (r *Runner) execute(ctx context.Context, auth command.Auth, plan command.Plan) (any, error) {
	path := auth.TokenPath
	if path == "" {
		path = r.settings.TokenPath
	}
	scopes := auth.Scopes
	if len(scopes) == 0 {
		scopes = r.settings.ScopesFor(plan.Service)
	}

	cred, err := r.tokens.Load(ctx, path, scopes)
	if err != nil {
		return nil, err
	}

	resp, err := r.dispatcher.Do(ctx, cred.TokenSource(), plan.Request, r.settings.BaseURLFor(plan.Service))
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

// resourceID returns the "id" of a single-resource payload.
func resourceID(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := obj["id"].(string)
	return id
}
