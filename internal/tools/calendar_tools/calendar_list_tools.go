package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/common"
)

// RegisterCalendarListTools registers calendar list tools with the MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := common.NewTool("calendar_list_calendars",
		mcp.WithDescription("List the calendars on the user's calendar list"),
		mcp.WithString("minAccessRole",
			mcp.Description("Only return calendars where the user has at least this role (freeBusyReader, reader, writer, owner)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of entries per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token of the page to return"),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandler("calendar_list_calendars", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	getCalendarTool := common.NewTool("calendar_get_calendar",
		mcp.WithDescription("Get a single entry of the user's calendar list"),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description(calendarIDDescription),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(getCalendarTool, common.InstrumentedToolHandler("calendar_get_calendar", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCalendar(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults, err := common.IntArg(args, "maxResults")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.ListCalendars{
		Auth:          common.AuthFromArgs(args),
		MinAccessRole: common.StringArg(args, "minAccessRole"),
		MaxResults:    maxResults,
		PageToken:     common.StringArg(args, "pageToken"),
	})
}

func handleGetCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.GetCalendar{
		Auth:       common.AuthFromArgs(args),
		CalendarID: common.StringArg(args, "calendarId"),
		Fields:     common.StringArg(args, "fields"),
	})
}
