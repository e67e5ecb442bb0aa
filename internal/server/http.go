package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MCPEndpointPath is where the streamable HTTP transport is mounted.
const MCPEndpointPath = "/mcp"

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// DisableStreaming makes the transport answer with plain JSON instead
	// of server-sent events.
	DisableStreaming bool

	// Health adds /healthz and /readyz when set.
	Health *HealthChecker
}

// HTTPServer serves the MCP server over the streamable HTTP transport.
// Requests are traced with otelhttp; tools authenticate with the
// configured credential file, so the endpoint itself is unauthenticated
// and should only be bound to trusted interfaces.
type HTTPServer struct {
	httpServer *http.Server
	addr       string
	handler    http.Handler
}

// NewHTTPServer creates the streamable HTTP transport for mcpServer.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, errors.New("mcp server is required")
	}
	if config.Addr == "" {
		return nil, errors.New("listen address is required")
	}

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(MCPEndpointPath),
	}
	if config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}

	mux := http.NewServeMux()
	mux.Handle(MCPEndpointPath, mcpserver.NewStreamableHTTPServer(mcpServer, opts...))
	if config.Health != nil {
		config.Health.RegisterHealthEndpoints(mux)
	}

	return &HTTPServer{
		addr:    config.Addr,
		handler: otelhttp.NewHandler(mux, "mcp-http"),
	}, nil
}

// Handler returns the server's HTTP handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves until Shutdown.
// ready, if not nil, is closed once the listener is bound.
func (s *HTTPServer) Start(ready chan<- struct{}) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()

	// No write timeout: streamed responses stay open for the session.
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting MCP HTTP server", "addr", s.addr, "endpoint", MCPEndpointPath)
	if ready != nil {
		close(ready)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the address of the server. After Start it is the bound address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
