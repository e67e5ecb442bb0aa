package tasks_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/server"
)

// RegisterTasksTools registers all Tasks-related tools with the MCP server
func RegisterTasksTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerTaskListTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task list tools: %w", err)
	}

	if err := registerTaskTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}

	return nil
}

const taskListIDDescription = "The ID of the task list ('@default' for the default list)"
