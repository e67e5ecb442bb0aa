// Package tasks_tools provides MCP tools for the Google Tasks API.
//
// # Available Tools
//
// Task List Management:
//   - tasks_list_task_lists: List all task lists
//   - tasks_get_task_list: Get details of a specific task list
//   - tasks_create_task_list: Create a new task list
//   - tasks_update_task_list: Update a task list's title
//   - tasks_delete_task_list: Delete a task list
//
// Task Management:
//   - tasks_list_tasks: List tasks in a task list (with filters)
//   - tasks_get_task: Get details of a specific task
//   - tasks_create_task: Create a new task
//   - tasks_update_task: Update a task
//   - tasks_delete_tasks: Delete one or more tasks
//   - tasks_complete_tasks: Mark one or more tasks as completed
//   - tasks_move_task: Move a task to another position, parent or list
//   - tasks_clear_completed: Clear all completed tasks from a list
//
// Only the list and get tools are registered in read-only mode.
package tasks_tools
