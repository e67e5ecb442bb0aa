package builder

import (
	"strings"
)

// TimeObject encodes a start or end value for the Calendar API.
//
// A value containing "T" is a date-time and becomes {"dateTime": value}.
// timeZone is attached only when it is non-empty and the value carries no
// offset of its own: no "Z", no "+", and no "-" after the date part.
// Anything else is an all-day date and becomes {"date": value}.
//
// The check is purely textual. Values are never parsed or validated.
func TimeObject(value, timeZone string) map[string]any {
	if !strings.Contains(value, "T") {
		return map[string]any{"date": value}
	}

	obj := map[string]any{"dateTime": value}
	if timeZone != "" && !hasOffset(value) {
		obj["timeZone"] = timeZone
	}
	return obj
}

// hasOffset reports whether a date-time string names its own zone.
// Dashes inside the leading "YYYY-MM-DD" are not offsets.
func hasOffset(value string) bool {
	if strings.ContainsAny(value, "Z+") {
		return true
	}
	if len(value) <= 10 {
		return false
	}
	return strings.Contains(value[10:], "-")
}

// SplitList splits a comma separated list, trimming blanks and dropping
// empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Fields assembles a request body from structured command fields.
// Empty fields are left out of the result.
type Fields interface {
	Assemble() map[string]any
}

// EventFields are the structured fields of a calendar event.
type EventFields struct {
	Summary     string
	Start       string
	End         string
	TimeZone    string // applied to Start/End when they carry no offset
	Location    string
	Description string
	Attendees   string // comma separated email addresses
	Recurrence  []string
}

// Assemble implements Fields
func (f EventFields) Assemble() map[string]any {
	body := make(map[string]any)
	if f.Summary != "" {
		body["summary"] = f.Summary
	}
	if f.Start != "" {
		body["start"] = TimeObject(f.Start, f.TimeZone)
	}
	if f.End != "" {
		body["end"] = TimeObject(f.End, f.TimeZone)
	}
	if f.Location != "" {
		body["location"] = f.Location
	}
	if f.Description != "" {
		body["description"] = f.Description
	}
	if emails := SplitList(f.Attendees); len(emails) > 0 {
		attendees := make([]any, 0, len(emails))
		for _, email := range emails {
			attendees = append(attendees, map[string]any{"email": email})
		}
		body["attendees"] = attendees
	}
	if len(f.Recurrence) > 0 {
		body["recurrence"] = append([]string(nil), f.Recurrence...)
	}
	return body
}

// TaskFields are the structured fields of a task. Due and Completed are
// RFC 3339 timestamps passed through verbatim.
type TaskFields struct {
	Title     string
	Notes     string
	Due       string
	Status    string // "needsAction" or "completed"
	Completed string
}

// Assemble implements Fields
func (f TaskFields) Assemble() map[string]any {
	body := make(map[string]any)
	for key, value := range map[string]string{
		"title":     f.Title,
		"notes":     f.Notes,
		"due":       f.Due,
		"status":    f.Status,
		"completed": f.Completed,
	} {
		if value != "" {
			body[key] = value
		}
	}
	return body
}

// TaskListFields are the structured fields of a task list.
type TaskListFields struct {
	Title string
}

// Assemble implements Fields
func (f TaskListFields) Assemble() map[string]any {
	body := make(map[string]any)
	if f.Title != "" {
		body["title"] = f.Title
	}
	return body
}
