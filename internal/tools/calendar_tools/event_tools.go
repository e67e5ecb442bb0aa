package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/common"
)

// RegisterEventTools registers event-related tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listEventsTool := common.NewTool("calendar_list_events",
		mcp.WithDescription("List/search calendar events within a time range"),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description(calendarIDDescription),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start of the range (RFC3339, e.g. '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End of the range (RFC3339, e.g. '2025-01-31T23:59:59Z')"),
		),
		mcp.WithString("query",
			mcp.Description("Free text search terms"),
		),
		mcp.WithBoolean("singleEvents",
			mcp.Description("Expand recurring events into instances"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order: startTime (requires singleEvents) or updated"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events per page"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone of the response"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token of the page to return"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandler("calendar_list_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	getEventTool := common.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description(calendarIDDescription),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to retrieve"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(getEventTool, common.InstrumentedToolHandler("calendar_get_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	// Register create/update/delete tools only if not in read-only mode
	if readOnly {
		return nil
	}

	createEventTool := common.NewTool("calendar_create_event",
		append(eventFieldOptions(
			mcp.WithDescription("Create a calendar event. 'body' replaces all other event fields."),
			mcp.WithString("calendarId",
				mcp.Required(),
				mcp.Description(calendarIDDescription),
			),
		),
			mcp.WithString("sendUpdates",
				mcp.Description("Guests to notify: all, externalOnly or none"),
			),
		)...,
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandler("calendar_create_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	updateEventTool := common.NewTool("calendar_update_event",
		append(eventFieldOptions(
			mcp.WithDescription("Patch an existing calendar event. Only the given fields change; 'body' replaces all other event fields."),
			mcp.WithString("calendarId",
				mcp.Required(),
				mcp.Description(calendarIDDescription),
			),
			mcp.WithString("eventId",
				mcp.Required(),
				mcp.Description("The ID of the event to update"),
			),
		),
			mcp.WithString("sendUpdates",
				mcp.Description("Guests to notify: all, externalOnly or none"),
			),
		)...,
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandler("calendar_update_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	deleteEventTool := common.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event"),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description(calendarIDDescription),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to delete"),
		),
		mcp.WithString("sendUpdates",
			mcp.Description("Guests to notify: all, externalOnly or none"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandler("calendar_delete_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	return nil
}

// eventFieldOptions appends the structured event fields to opts.
func eventFieldOptions(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("summary",
			mcp.Description("Event title"),
		),
		mcp.WithString("start",
			mcp.Description("Start: a date (YYYY-MM-DD) for all-day events or a date-time"),
		),
		mcp.WithString("end",
			mcp.Description("End: a date (YYYY-MM-DD) for all-day events or a date-time"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone applied to start/end date-times without an offset (e.g. 'America/New_York')"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithArray("recurrence",
			mcp.Description("Recurrence lines (e.g. 'RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR')"),
			mcp.WithStringItems(),
		),
		mcp.WithString("body",
			mcp.Description("Full event resource as JSON; replaces the individual fields"),
		),
	)
}

func eventFields(args map[string]any) builder.EventFields {
	return builder.EventFields{
		Summary:     common.StringArg(args, "summary"),
		Start:       common.StringArg(args, "start"),
		End:         common.StringArg(args, "end"),
		TimeZone:    common.StringArg(args, "timeZone"),
		Location:    common.StringArg(args, "location"),
		Description: common.StringArg(args, "description"),
		Attendees:   common.StringArg(args, "attendees"),
		Recurrence:  common.StringsArg(args, "recurrence"),
	}
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults, err := common.IntArg(args, "maxResults")
	if err != nil {
		return common.ArgumentError(err), nil
	}
	singleEvents, err := common.BoolArg(args, "singleEvents")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.ListEvents{
		Auth:         common.AuthFromArgs(args),
		CalendarID:   common.StringArg(args, "calendarId"),
		TimeMin:      common.StringArg(args, "timeMin"),
		TimeMax:      common.StringArg(args, "timeMax"),
		Query:        common.StringArg(args, "query"),
		SingleEvents: singleEvents,
		OrderBy:      common.StringArg(args, "orderBy"),
		MaxResults:   maxResults,
		TimeZone:     common.StringArg(args, "timeZone"),
		PageToken:    common.StringArg(args, "pageToken"),
		Fields:       common.StringArg(args, "fields"),
	})
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.GetEvent{
		Auth:       common.AuthFromArgs(args),
		CalendarID: common.StringArg(args, "calendarId"),
		EventID:    common.StringArg(args, "eventId"),
		Fields:     common.StringArg(args, "fields"),
	})
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.CreateEvent{
		Auth:        common.AuthFromArgs(args),
		CalendarID:  common.StringArg(args, "calendarId"),
		Fields:      eventFields(args),
		SendUpdates: common.StringArg(args, "sendUpdates"),
		Body:        body,
	})
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.UpdateEvent{
		Auth:        common.AuthFromArgs(args),
		CalendarID:  common.StringArg(args, "calendarId"),
		EventID:     common.StringArg(args, "eventId"),
		Fields:      eventFields(args),
		SendUpdates: common.StringArg(args, "sendUpdates"),
		Body:        body,
	})
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.DeleteEvent{
		Auth:        common.AuthFromArgs(args),
		CalendarID:  common.StringArg(args, "calendarId"),
		EventID:     common.StringArg(args, "eventId"),
		SendUpdates: common.StringArg(args, "sendUpdates"),
	})
}
