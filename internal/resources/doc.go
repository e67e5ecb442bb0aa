// Package resources provides MCP resources for exposing account data.
// Resources are read-only data sources that MCP clients can fetch without
// calling a tool: the primary calendar (for its time zone), the calendar
// list and the task lists.
package resources
