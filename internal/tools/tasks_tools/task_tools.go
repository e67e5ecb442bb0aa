package tasks_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
	"github.com/teemow/calendarctl/internal/tools/batch"
	"github.com/teemow/calendarctl/internal/tools/common"
)

const statusCompleted = "completed"

func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTasksTool := common.NewTool("tasks_list_tasks",
		mcp.WithDescription("List tasks in a task list"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("completedMin",
			mcp.Description("Lower bound for completion date (RFC3339)"),
		),
		mcp.WithString("completedMax",
			mcp.Description("Upper bound for completion date (RFC3339)"),
		),
		mcp.WithString("dueMin",
			mcp.Description("Lower bound for due date (RFC3339)"),
		),
		mcp.WithString("dueMax",
			mcp.Description("Upper bound for due date (RFC3339)"),
		),
		mcp.WithString("updatedMin",
			mcp.Description("Lower bound for last modification time (RFC3339)"),
		),
		mcp.WithBoolean("showCompleted",
			mcp.Description("Include completed tasks"),
		),
		mcp.WithBoolean("showDeleted",
			mcp.Description("Include deleted tasks"),
		),
		mcp.WithBoolean("showHidden",
			mcp.Description("Include hidden tasks"),
		),
		mcp.WithBoolean("showAssigned",
			mcp.Description("Include tasks assigned from Docs or Chat"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of tasks per page"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token of the page to return"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandler("tasks_list_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTasks(ctx, request, sc)
		}))

	getTaskTool := common.NewTool("tasks_get_task",
		mcp.WithDescription("Get details of a specific task"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
		mcp.WithString("fields",
			mcp.Description("Partial response selector"),
		),
	)

	s.AddTool(getTaskTool, common.InstrumentedToolHandler("tasks_get_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTask(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createTaskTool := common.NewTool("tasks_create_task",
		taskFieldOptions(
			mcp.WithDescription("Create a new task. 'body' replaces all other task fields."),
			mcp.WithString("taskListId",
				mcp.Required(),
				mcp.Description(taskListIDDescription),
			),
			mcp.WithString("parent",
				mcp.Description("Parent task ID to create a subtask"),
			),
			mcp.WithString("previous",
				mcp.Description("Previous sibling task ID for positioning"),
			),
		)...,
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandler("tasks_create_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	updateTaskTool := common.NewTool("tasks_update_task",
		taskFieldOptions(
			mcp.WithDescription("Patch a task. Only the given fields change; 'body' replaces all other task fields."),
			mcp.WithString("taskListId",
				mcp.Required(),
				mcp.Description(taskListIDDescription),
			),
			mcp.WithString("taskId",
				mcp.Required(),
				mcp.Description("The ID of the task to update"),
			),
		)...,
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandler("tasks_update_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTask(ctx, request, sc)
		}))

	deleteTasksTool := common.NewTool("tasks_delete_tasks",
		mcp.WithDescription("Delete one or more tasks"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to delete"),
		),
	)

	s.AddTool(deleteTasksTool, common.InstrumentedToolHandler("tasks_delete_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteTasks(ctx, request, sc)
		}))

	completeTasksTool := common.NewTool("tasks_complete_tasks",
		mcp.WithDescription("Mark one or more tasks as completed"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to complete"),
		),
	)

	s.AddTool(completeTasksTool, common.InstrumentedToolHandler("tasks_complete_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteTasks(ctx, request, sc)
		}))

	moveTaskTool := common.NewTool("tasks_move_task",
		mcp.WithDescription("Move a task to a different position, parent or task list"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to move"),
		),
		mcp.WithString("parent",
			mcp.Description("New parent task ID (omit to move to root level)"),
		),
		mcp.WithString("previous",
			mcp.Description("Previous sibling task ID for positioning"),
		),
		mcp.WithString("destinationTaskList",
			mcp.Description("Task list to move the task into"),
		),
	)

	s.AddTool(moveTaskTool, common.InstrumentedToolHandler("tasks_move_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveTask(ctx, request, sc)
		}))

	clearCompletedTool := common.NewTool("tasks_clear_completed",
		mcp.WithDescription("Clear all completed tasks from a task list"),
		mcp.WithString("taskListId",
			mcp.Required(),
			mcp.Description(taskListIDDescription),
		),
	)

	s.AddTool(clearCompletedTool, common.InstrumentedToolHandler("tasks_clear_completed", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleClearCompleted(ctx, request, sc)
		}))

	return nil
}

// taskFieldOptions appends the structured task fields to opts.
func taskFieldOptions(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("title",
			mcp.Description("Task title"),
		),
		mcp.WithString("notes",
			mcp.Description("Task notes"),
		),
		mcp.WithString("due",
			mcp.Description("Due date (RFC3339; only the date part is kept by the API)"),
		),
		mcp.WithString("status",
			mcp.Description("Task status: needsAction or completed"),
		),
		mcp.WithString("completed",
			mcp.Description("Completion time (RFC3339)"),
		),
		mcp.WithString("body",
			mcp.Description("Task resource as JSON; replaces the individual fields"),
		),
	)
}

func taskFields(args map[string]any) builder.TaskFields {
	return builder.TaskFields{
		Title:     common.StringArg(args, "title"),
		Notes:     common.StringArg(args, "notes"),
		Due:       common.StringArg(args, "due"),
		Status:    common.StringArg(args, "status"),
		Completed: common.StringArg(args, "completed"),
	}
}

func handleListTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults, err := common.IntArg(args, "maxResults")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	cmd := command.ListTasks{
		Auth:         common.AuthFromArgs(args),
		TaskListID:   common.StringArg(args, "taskListId"),
		CompletedMax: common.StringArg(args, "completedMax"),
		CompletedMin: common.StringArg(args, "completedMin"),
		DueMax:       common.StringArg(args, "dueMax"),
		DueMin:       common.StringArg(args, "dueMin"),
		MaxResults:   maxResults,
		PageToken:    common.StringArg(args, "pageToken"),
		UpdatedMin:   common.StringArg(args, "updatedMin"),
		Fields:       common.StringArg(args, "fields"),
	}
	for key, target := range map[string]**bool{
		"showCompleted": &cmd.ShowCompleted,
		"showDeleted":   &cmd.ShowDeleted,
		"showHidden":    &cmd.ShowHidden,
		"showAssigned":  &cmd.ShowAssigned,
	} {
		if *target, err = common.OptionalBoolArg(args, key); err != nil {
			return common.ArgumentError(err), nil
		}
	}

	return common.Execute(ctx, sc, cmd)
}

func handleGetTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.GetTask{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
		TaskID:     common.StringArg(args, "taskId"),
		Fields:     common.StringArg(args, "fields"),
	})
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.CreateTask{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
		Fields:     taskFields(args),
		Parent:     common.StringArg(args, "parent"),
		Previous:   common.StringArg(args, "previous"),
		Body:       body,
	})
}

func handleUpdateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := common.InputArg(args, "body")
	if err != nil {
		return common.ArgumentError(err), nil
	}

	return common.Execute(ctx, sc, command.UpdateTask{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
		TaskID:     common.StringArg(args, "taskId"),
		Fields:     taskFields(args),
		Body:       body,
	})
}

func handleDeleteTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.IDs(args["taskIds"], "taskIds")
	if err != nil {
		return common.ArgumentError(err), nil
	}
	auth := common.AuthFromArgs(args)
	taskListID := common.StringArg(args, "taskListId")

	return common.ExecuteBatch(ctx, sc, taskIDs, func(id string) command.Command {
		return command.DeleteTask{Auth: auth, TaskListID: taskListID, TaskID: id}
	})
}

func handleCompleteTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.IDs(args["taskIds"], "taskIds")
	if err != nil {
		return common.ArgumentError(err), nil
	}
	auth := common.AuthFromArgs(args)
	taskListID := common.StringArg(args, "taskListId")

	return common.ExecuteBatch(ctx, sc, taskIDs, func(id string) command.Command {
		return command.UpdateTask{
			Auth:       auth,
			TaskListID: taskListID,
			TaskID:     id,
			Fields:     builder.TaskFields{Status: statusCompleted},
		}
	})
}

func handleMoveTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.MoveTask{
		Auth:                common.AuthFromArgs(args),
		TaskListID:          common.StringArg(args, "taskListId"),
		TaskID:              common.StringArg(args, "taskId"),
		Parent:              common.StringArg(args, "parent"),
		Previous:            common.StringArg(args, "previous"),
		DestinationTaskList: common.StringArg(args, "destinationTaskList"),
	})
}

func handleClearCompleted(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	return common.Execute(ctx, sc, command.ClearTasks{
		Auth:       common.AuthFromArgs(args),
		TaskListID: common.StringArg(args, "taskListId"),
	})
}
