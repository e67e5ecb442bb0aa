// Package server holds the state shared by the MCP tool handlers and the
// HTTP endpoints of the serve command.
//
// ServerContext carries the command executor and the tool metrics
// recorder. HTTPServer exposes the MCP server over the streamable HTTP
// transport, MetricsServer exposes the Prometheus registry of an
// instrumentation.Provider on a dedicated port, and HealthChecker adds
// liveness and readiness probes to both.
package server
