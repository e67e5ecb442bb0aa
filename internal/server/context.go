package server

import (
	"context"
	"sync"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

// Executor runs one typed command. *runner.Runner implements it.
type Executor interface {
	Run(ctx context.Context, c command.Command) (any, error)
}

// ServerContext holds the shared state of the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	executor Executor
	metrics  *instrumentation.Metrics
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, executor Executor) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		executor: executor,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Executor returns the command executor
func (sc *ServerContext) Executor() Executor {
	return sc.executor
}

// SetMetrics sets the recorder used for tool invocation metrics
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the tool metrics recorder, or nil if none is set
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
