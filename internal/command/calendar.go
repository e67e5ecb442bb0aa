package command

import (
	"net/url"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

// ListCalendars lists the entries of the user's calendar list.
type ListCalendars struct {
	Auth

	MinAccessRole string
	MaxResults    int
	PageToken     string
}

func (c ListCalendars) plan() (Plan, error) {
	p := newPlan("calendars.list", instrumentation.OperationList, google.ServiceCalendar,
		"GET", "/users/me/calendarList")
	p.Request.Params.AddString("minAccessRole", c.MinAccessRole)
	p.Request.Params.AddInt("maxResults", c.MaxResults)
	p.Request.Params.AddString("pageToken", c.PageToken)
	return p, nil
}

// GetCalendar fetches one calendar list entry.
type GetCalendar struct {
	Auth

	CalendarID string
	Fields     string
}

func (c GetCalendar) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("calendars.get", instrumentation.OperationGet, google.ServiceCalendar,
		"GET", "/users/me/calendarList/"+url.PathEscape(c.CalendarID))
	p.Request.Params.AddString("fields", c.Fields)
	return p, nil
}

// ListEvents lists events of a calendar within a time range.
type ListEvents struct {
	Auth

	CalendarID   string
	TimeMin      string
	TimeMax      string
	Query        string
	SingleEvents bool
	OrderBy      string
	MaxResults   int
	TimeZone     string
	PageToken    string
	Fields       string
}

func (c ListEvents) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID, "time min", c.TimeMin, "time max", c.TimeMax); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("events.list", instrumentation.OperationList, google.ServiceCalendar,
		"GET", eventsPath(c.CalendarID))
	params := &p.Request.Params
	params.Add("timeMin", c.TimeMin)
	params.Add("timeMax", c.TimeMax)
	params.AddString("q", c.Query)
	if c.SingleEvents {
		params.Add("singleEvents", true)
	}
	params.AddString("orderBy", c.OrderBy)
	params.AddInt("maxResults", c.MaxResults)
	params.AddString("timeZone", c.TimeZone)
	params.AddString("pageToken", c.PageToken)
	params.AddString("fields", c.Fields)
	return p, nil
}

// GetEvent fetches one event.
type GetEvent struct {
	Auth

	CalendarID string
	EventID    string
	Fields     string
}

func (c GetEvent) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID, "event ID", c.EventID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("events.get", instrumentation.OperationGet, google.ServiceCalendar,
		"GET", eventPath(c.CalendarID, c.EventID))
	p.Request.Params.AddString("fields", c.Fields)
	return p, nil
}

// CreateEvent inserts an event. Body, when given, replaces Fields.
type CreateEvent struct {
	Auth

	CalendarID  string
	Fields      builder.EventFields
	SendUpdates string // all, externalOnly or none
	Body        builder.Input
}

func (c CreateEvent) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	body, err := builder.CreateBody(c.Body, c.Fields, "summary", "start", "end")
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("events.create", instrumentation.OperationCreate, google.ServiceCalendar,
		"POST", eventsPath(c.CalendarID))
	p.Request.Params.AddString("sendUpdates", c.SendUpdates)
	p.Request.Body = body
	return p, nil
}

// UpdateEvent patches an event. Body, when given, replaces Fields.
type UpdateEvent struct {
	Auth

	CalendarID  string
	EventID     string
	Fields      builder.EventFields
	SendUpdates string
	Body        builder.Input
}

func (c UpdateEvent) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID, "event ID", c.EventID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	body, err := builder.UpdateBody(c.Body, c.Fields)
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("events.update", instrumentation.OperationUpdate, google.ServiceCalendar,
		"PATCH", eventPath(c.CalendarID, c.EventID))
	p.Request.Params.AddString("sendUpdates", c.SendUpdates)
	p.Request.Body = body
	return p, nil
}

// DeleteEvent deletes an event.
type DeleteEvent struct {
	Auth

	CalendarID  string
	EventID     string
	SendUpdates string
}

func (c DeleteEvent) plan() (Plan, error) {
	if names := missing("calendar ID", c.CalendarID, "event ID", c.EventID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("events.delete", instrumentation.OperationDelete, google.ServiceCalendar,
		"DELETE", eventPath(c.CalendarID, c.EventID))
	p.Request.Params.AddString("sendUpdates", c.SendUpdates)
	return p, nil
}

// FreeBusy queries busy intervals of one or more calendars.
type FreeBusy struct {
	Auth

	Calendars []string
	TimeMin   string
	TimeMax   string
	TimeZone  string
}

func (c FreeBusy) plan() (Plan, error) {
	var ids []string
	for _, id := range c.Calendars {
		ids = append(ids, builder.SplitList(id)...)
	}

	calendars := ""
	if len(ids) > 0 {
		calendars = "set"
	}
	if names := missing("calendars", calendars, "time min", c.TimeMin, "time max", c.TimeMax); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}

	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id})
	}
	body := map[string]any{
		"timeMin": c.TimeMin,
		"timeMax": c.TimeMax,
		"items":   items,
	}
	if c.TimeZone != "" {
		body["timeZone"] = c.TimeZone
	}

	p := newPlan("freebusy.query", instrumentation.OperationQuery, google.ServiceCalendar,
		"POST", "/freeBusy")
	p.Request.Body = body
	return p, nil
}

func eventsPath(calendarID string) string {
	return "/calendars/" + url.PathEscape(calendarID) + "/events"
}

func eventPath(calendarID, eventID string) string {
	return eventsPath(calendarID) + "/" + url.PathEscape(eventID)
}
