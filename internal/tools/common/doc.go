// Package common provides helpers shared by the MCP tool packages:
// argument extraction, command execution and instrumentation.
package common
