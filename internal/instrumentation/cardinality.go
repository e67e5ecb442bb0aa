package instrumentation

import (
	"net/url"
	"strings"
)

// Cardinality management helpers for metrics.
//
// Request targets embed calendar, event and task identifiers, so they must
// never become label values. These helpers reduce a request to a small,
// fixed set of service and operation names.

// Common operation types for Google API metrics.
// Status, OAuth, and Service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationMove   = "move"
	OperationClear  = "clear"
	OperationQuery  = "query"
	OperationCall   = "call"
	OperationOther  = "other"
)

// ServiceFromURL classifies a fully resolved request URL as calendar, tasks or other.
//
// Example:
//
//	ServiceFromURL("https://www.googleapis.com/calendar/v3/users/me/calendarList") // "calendar"
//	ServiceFromURL("https://tasks.googleapis.com/tasks/v1/users/@me/lists")       // "tasks"
//	ServiceFromURL("https://example.com/")                                        // "other"
func ServiceFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ServiceOther
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.HasPrefix(host, "tasks."), strings.HasPrefix(u.Path, "/tasks/"):
		return ServiceTasks
	case strings.HasPrefix(u.Path, "/calendar/"):
		return ServiceCalendar
	default:
		return ServiceOther
	}
}

// OperationFromMethod maps an HTTP method to a coarse operation type.
func OperationFromMethod(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return OperationGet
	case "POST":
		return OperationCreate
	case "PATCH", "PUT":
		return OperationUpdate
	case "DELETE":
		return OperationDelete
	default:
		return OperationOther
	}
}
