// Package google_tools provides the generic google_api_call tool.
//
// The tool sends an arbitrary request to the Calendar or Tasks REST API
// with the server's credentials, for endpoints that have no dedicated
// tool. In read-only mode only GET requests are accepted.
package google_tools
