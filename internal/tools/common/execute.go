package common

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/output"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/batch"
)

// NewTool creates a tool that also accepts the shared credential arguments.
func NewTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts,
		mcp.WithString(ArgTokenPath,
			mcp.Description("Path to the OAuth token file (default: configured token path)"),
		),
		mcp.WithString(ArgScopes,
			mcp.Description("OAuth scopes separated by commas or spaces (default: the service's default scopes)"),
		),
	)
	return mcp.NewTool(name, opts...)
}

// Execute runs c and renders its payload as indented JSON text. Command
// failures become error results so the client sees the message.
func Execute(ctx context.Context, sc *server.ServerContext, c command.Command) (*mcp.CallToolResult, error) {
	payload, err := sc.Executor().Run(ctx, c)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := output.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to render result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ArgumentError reports an invalid tool argument as an error result.
func ArgumentError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
}

// ExecuteBatch runs the command built for each ID and renders the batch
// summary. Individual failures are reported in the summary; the result is
// an error result only when every command failed.
func ExecuteBatch(ctx context.Context, sc *server.ServerContext, ids []string, build func(id string) command.Command) (*mcp.CallToolResult, error) {
	summary := batch.Run(ctx, ids, func(ctx context.Context, id string) (any, error) {
		return sc.Executor().Run(ctx, build(id))
	})

	data, err := output.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to render result: %w", err)
	}
	result := mcp.NewToolResultText(string(data))
	result.IsError = summary.Successful == 0
	return result, nil
}
