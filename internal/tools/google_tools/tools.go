package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/common"
)

// RegisterGoogleTools registers the passthrough API tool with the MCP server
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	description := "Send a raw request to the Google Calendar or Tasks REST API. " +
		"Relative paths are joined onto the service's base URL."
	if readOnly {
		description += " Only GET requests are allowed on this server."
	}

	apiCallTool := common.NewTool("google_api_call",
		mcp.WithDescription(description),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("HTTP method: GET, POST, PATCH, PUT or DELETE"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path relative to the service base URL (e.g. '/users/me/calendarList') or an absolute https URL"),
		),
		mcp.WithString("service",
			mcp.Description("Base API for relative paths: calendar (default) or tasks"),
		),
		mcp.WithString("params",
			mcp.Description("Query parameters as a JSON object"),
		),
		mcp.WithString("body",
			mcp.Description("Request body as JSON"),
		),
	)

	s.AddTool(apiCallTool, common.InstrumentedToolHandler("google_api_call", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAPICall(ctx, request, sc, readOnly)
		}))

	return nil
}

func handleAPICall(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, readOnly bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	method := common.StringArg(args, "method")
	if readOnly {
		if normalized, err := api.NormalizeMethod(method); err == nil && normalized != "GET" {
			return mcp.NewToolResultError(fmt.Sprintf("%s requests are not allowed in read-only mode", normalized)), nil
		}
	}

	svc, err := google.ParseService(common.StringArg(args, "service"))
	if err != nil {
		return common.ArgumentError(err), nil
	}
	params, err := common.InputArg(args, "params")
	if err != nil {
		return common.ArgumentError(err), nil
	}
	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.Call{
		Auth:    common.AuthFromArgs(args),
		Method:  method,
		Path:    common.StringArg(args, "path"),
		Params:  params,
		Body:    body,
		Service: svc,
	})
}
