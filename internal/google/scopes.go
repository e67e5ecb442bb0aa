package google

import (
	"fmt"
	"strings"

	calendar "google.golang.org/api/calendar/v3"
	tasks "google.golang.org/api/tasks/v1"
)

// Service identifies one of the two backing REST APIs.
type Service string

const (
	ServiceCalendar Service = "calendar"
	ServiceTasks    Service = "tasks"
)

// ParseService parses a service name. An empty name selects the calendar API.
func ParseService(name string) (Service, error) {
	switch svc := Service(strings.ToLower(strings.TrimSpace(name))); svc {
	case "":
		return ServiceCalendar, nil
	case ServiceCalendar, ServiceTasks:
		return svc, nil
	default:
		return "", fmt.Errorf("unknown service %q (expected calendar or tasks)", name)
	}
}

// Base URLs of the backing services. Paths built by commands are joined onto these.
const (
	CalendarBaseURL = "https://www.googleapis.com/calendar/v3"
	TasksBaseURL    = "https://tasks.googleapis.com/tasks/v1"
)

// DefaultCalendarScopes are requested for calendar commands when none are given.
var DefaultCalendarScopes = []string{
	calendar.CalendarScope,
}

// DefaultTasksScopes are requested for task and task list commands when none are given.
var DefaultTasksScopes = []string{
	tasks.TasksScope,
}

// DefaultScopes returns a copy of the default scopes for svc.
func DefaultScopes(svc Service) []string {
	switch svc {
	case ServiceTasks:
		return append([]string(nil), DefaultTasksScopes...)
	default:
		return append([]string(nil), DefaultCalendarScopes...)
	}
}

// DefaultBaseURL returns the base URL for svc.
func DefaultBaseURL(svc Service) string {
	if svc == ServiceTasks {
		return TasksBaseURL
	}
	return CalendarBaseURL
}
