package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/common"
)

// RegisterSchedulingTools registers availability tools with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	queryFreeBusyTool := common.NewTool("calendar_query_freebusy",
		mcp.WithDescription("Check availability for one or more calendars in a time range"),
		mcp.WithString("calendars",
			mcp.Required(),
			mcp.Description("Comma-separated list of calendar IDs or email addresses to check"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start of the range (RFC3339, e.g. '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End of the range (RFC3339, e.g. '2025-01-31T23:59:59Z')"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone of the response (e.g. 'Europe/Berlin')"),
		),
	)

	s.AddTool(queryFreeBusyTool, common.InstrumentedToolHandler("calendar_query_freebusy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryFreeBusy(ctx, request, sc)
		}))

	return nil
}

func handleQueryFreeBusy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.FreeBusy{
		Auth:      common.AuthFromArgs(args),
		Calendars: common.ListArg(args, "calendars"),
		TimeMin:   common.StringArg(args, "timeMin"),
		TimeMax:   common.StringArg(args, "timeMax"),
		TimeZone:  common.StringArg(args, "timeZone"),
	})
}
