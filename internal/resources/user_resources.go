package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/output"
	"github.com/teemow/calendarctl/internal/server"
)

// URIs of the registered resources.
const (
	PrimaryCalendarURI = "calendar://calendars/primary"
	CalendarListURI    = "calendar://calendars"
	TaskListsURI       = "tasks://lists"
)

type userResource struct {
	uri         string
	name        string
	description string
	command     command.Command
}

var userResources = []userResource{
	{
		uri:         PrimaryCalendarURI,
		name:        "Primary Calendar",
		description: "Calendar list entry of the user's primary calendar, including its time zone",
		command:     command.GetCalendar{CalendarID: "primary"},
	},
	{
		uri:         CalendarListURI,
		name:        "Calendar List",
		description: "Calendars on the user's calendar list",
		command:     command.ListCalendars{},
	},
	{
		uri:         TaskListsURI,
		name:        "Task Lists",
		description: "The user's task lists",
		command:     command.ListTaskLists{},
	},
}

// RegisterUserResources registers read-only resources describing the
// calendars and task lists of the stored credential's account.
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	for _, r := range userResources {
		resource := mcp.NewResource(
			r.uri,
			r.name,
			mcp.WithResourceDescription(r.description),
			mcp.WithMIMEType("application/json"),
		)

		c := r.command
		s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return readCommand(ctx, request, sc, c)
		})
	}

	return nil
}

// readCommand runs c with the default credential and returns its payload
// as the resource contents.
func readCommand(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext, c command.Command) ([]mcp.ResourceContents, error) {
	payload, err := sc.Executor().Run(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", request.Params.URI, err)
	}

	jsonData, err := output.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", request.Params.URI, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
