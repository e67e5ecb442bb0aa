// Package calendar_tools provides MCP tools for the Google Calendar API.
//
// Each tool translates its arguments into a typed command and runs it
// through the server's executor. Tools that change data are registered
// only when the server is not read-only.
package calendar_tools
