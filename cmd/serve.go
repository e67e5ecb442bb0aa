package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/calendarctl/internal/logging"
	"github.com/teemow/calendarctl/internal/resources"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/calendar_tools"
	"github.com/teemow/calendarctl/internal/tools/google_tools"
	"github.com/teemow/calendarctl/internal/tools/tasks_tools"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

type serveOptions struct {
	transport        string
	httpAddr         string
	yolo             bool
	disableStreaming bool
	metricsAddr      string
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server exposing calendar and task operations as tools.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp

Tools authenticate with the stored token file, so the HTTP transport should
only be bound to trusted interfaces.

By default only read operations are registered. Use --yolo to enable
operations that create, change or delete data.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.yolo, "yolo", false, "Enable write operations (default is read-only)")
	cmd.Flags().BoolVar(&opts.disableStreaming, "disable-streaming", false, "Disable streaming for streamable-http transport")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (for streamable-http transport with the prometheus exporter)")

	return cmd
}

func (a *app) serve(ctx context.Context, opts serveOptions) error {
	if opts.transport != transportStdio && opts.transport != transportStreamableHTTP {
		return &usageError{err: fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)}
	}

	serverContext := server.NewServerContext(ctx, a.runner)
	serverContext.SetMetrics(a.provider.Metrics())
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			a.logger.Warn("server context shutdown failed", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("calendarctl", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	// readOnly is the inverse of yolo
	readOnly := !opts.yolo
	if readOnly {
		a.logger.Info("starting server in read-only mode (use --yolo to enable write operations)")
	} else {
		a.logger.Info("starting server with write operations enabled")
	}

	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	switch opts.transport {
	case transportStreamableHTTP:
		return a.runStreamableHTTPServer(ctx, mcpSrv, serverContext, opts)
	default:
		return runStdioServer(mcpSrv)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers the tools of every service and the user
// resources on mcpSrv.
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Tasks",
			register: func() error {
				return tasks_tools.RegisterTasksTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Google API",
			register: func() error {
				return google_tools.RegisterGoogleTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "User Resources",
			register: func() error {
				return resources.RegisterUserResources(mcpSrv, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func (a *app) runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, opts serveOptions) error {
	health := server.NewHealthChecker(sc, version)

	httpServer, err := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		Addr:             opts.httpAddr,
		DisableStreaming: opts.disableStreaming,
		Health:           health,
	})
	if err != nil {
		return err
	}

	if a.provider.MetricsHandler() != nil {
		metricsServer, err := a.startMetricsServer(opts.metricsAddr, health)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	serverDone := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ready:
		health.SetReady(true)
		a.logger.Info("streamable HTTP server started",
			"addr", httpServer.Addr(),
			"endpoint", server.MCPEndpointPath,
			"health", "/healthz, /readyz")
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server failed to start: %w", err)
		}
		return nil
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received, stopping HTTP server")
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	a.logger.Info("HTTP server gracefully stopped")
	return nil
}

func (a *app) startMetricsServer(addr string, health *server.HealthChecker) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		InstrumentationProvider: a.provider,
		Health:                  health,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	metricsReady := make(chan struct{})
	metricsErr := make(chan error, 1)
	go func() {
		if err := metricsServer.Start(metricsReady); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsErr <- err
		}
	}()

	select {
	case <-metricsReady:
		a.logger.Info("metrics server started", "addr", metricsServer.Addr())
	case err := <-metricsErr:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, errors.New("metrics server failed to start within timeout")
	}

	return metricsServer, nil
}
