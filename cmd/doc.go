// Package cmd implements the command-line interface for calendarctl.
//
// Every Calendar and Tasks operation is available both grouped by resource
// (e.g. "events list") and under its hyphenated single-level name
// (e.g. "list-events"). The remaining commands are:
//   - call: Send an arbitrary request to a service endpoint
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// Results are printed to stdout as indented JSON. Errors go to stderr and
// set the exit code: 1 for request failures, 2 for invalid usage.
package cmd
