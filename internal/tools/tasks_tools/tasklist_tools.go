package tasks_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/common"
)

func registerTaskListTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTaskListsTool := common.NewTool("tasks_list_task_lists",
		mcp.WithDescription("List all task lists"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of task lists per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token of the page to return"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(listTaskListsTool, common.InstrumentedToolHandler("tasks_list_task_lists", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTaskLists(ctx, request, sc)
		}))

	getTaskListTool := common.NewTool("tasks_get_task_list",
		mcp.WithDescription("Get details of a specific task list"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(getTaskListTool, common.InstrumentedToolHandler("tasks_get_task_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTaskList(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createTaskListTool := common.NewTool("tasks_create_task_list",
		mcp.WithDescription("Create a new task list"),
		mcp.WithString("title",
			mcp.Description("Title of the task list"),
		),
		mcp.WithString("body",
			mcp.Description("Full task list resource as JSON; replaces title"),
		),
	)

	s.AddTool(createTaskListTool, common.InstrumentedToolHandler("tasks_create_task_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTaskList(ctx, request, sc)
		}))

	updateTaskListTool := common.NewTool("tasks_update_task_list",
		mcp.WithDescription("Update a task list's title"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("title",
			mcp.Description("New title of the task list"),
		),
		mcp.WithString("body",
			mcp.Description("Partial task list resource as JSON; replaces title"),
		),
	)

	s.AddTool(updateTaskListTool, common.InstrumentedToolHandler("tasks_update_task_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTaskList(ctx, request, sc)
		}))

	deleteTaskListTool := common.NewTool("tasks_delete_task_list",
		mcp.WithDescription("Delete a task list and all of its tasks"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
	)

	s.AddTool(deleteTaskListTool, common.InstrumentedToolHandler("tasks_delete_task_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteTaskList(ctx, request, sc)
		}))

	return nil
}

func handleListTaskLists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults, err := common.IntArg(args, "maxResults")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.ListTaskLists{
		Auth:       common.AuthFromArgs(args),
		MaxResults: maxResults,
		PageToken:  common.StringArg(args, "pageToken"),
		Fields:     common.StringArg(args, "fields"),
	})
}

func handleGetTaskList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.GetTaskList{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
		Fields:     common.StringArg(args, "fields"),
	})
}

func handleCreateTaskList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.CreateTaskList{
		Auth:   common.AuthFromArgs(args),
		Fields: builder.TaskListFields{Title: common.StringArg(args, "title")},
		Body:   body,
	})
}

func handleUpdateTaskList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.UpdateTaskList{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
		Fields:     builder.TaskListFields{Title: common.StringArg(args, "title")},
		Body:       body,
	})
}

func handleDeleteTaskList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.DeleteTaskList{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
	})
}
