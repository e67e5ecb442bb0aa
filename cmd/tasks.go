package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
)

func addTasksCommands(root *cobra.Command, a *app) {
	tasklists := &cobra.Command{
		Use:   "tasklists",
		Short: "List, read and change task lists",
	}
	tasklists.AddCommand(
		newListTaskListsCmd(a, "list"),
		newGetTaskListCmd(a, "get"),
		newCreateTaskListCmd(a, "create"),
		newUpdateTaskListCmd(a, "update"),
		newDeleteTaskListCmd(a, "delete"),
	)

	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "List, read and change tasks",
	}
	tasks.AddCommand(
		newListTasksCmd(a, "list"),
		newGetTaskCmd(a, "get"),
		newCreateTaskCmd(a, "create"),
		newUpdateTaskCmd(a, "update"),
		newDeleteTaskCmd(a, "delete"),
		newMoveTaskCmd(a, "move"),
		newClearTasksCmd(a, "clear"),
	)

	root.AddCommand(tasklists, tasks)

	root.AddCommand(
		flat(newListTaskListsCmd(a, ""), "list-tasklists"),
		flat(newGetTaskListCmd(a, ""), "get-tasklist"),
		flat(newCreateTaskListCmd(a, ""), "create-tasklist"),
		flat(newUpdateTaskListCmd(a, ""), "update-tasklist"),
		flat(newDeleteTaskListCmd(a, ""), "delete-tasklist"),
		flat(newListTasksCmd(a, ""), "list-tasks"),
		flat(newGetTaskCmd(a, ""), "get-task"),
		flat(newCreateTaskCmd(a, ""), "create-task"),
		flat(newUpdateTaskCmd(a, ""), "update-task"),
		flat(newDeleteTaskCmd(a, ""), "delete-task"),
		flat(newMoveTaskCmd(a, ""), "move-task"),
		flat(newClearTasksCmd(a, ""), "clear-tasks"),
	)
}

func newListTaskListsCmd(a *app, use string) *cobra.Command {
	var c command.ListTaskLists

	cmd := &cobra.Command{
		Use:   use,
		Short: "List task lists",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().IntVar(&c.MaxResults, "max-results", 0, "Max results")
	cmd.Flags().StringVar(&c.PageToken, "page-token", "", "Page token")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")

	return cmd
}

func newGetTaskListCmd(a *app, use string) *cobra.Command {
	var c command.GetTaskList

	cmd := &cobra.Command{
		Use:   use,
		Short: "Get a task list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "tasklist")

	return cmd
}

func newCreateTaskListCmd(a *app, use string) *cobra.Command {
	var (
		c    command.CreateTaskList
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Create a task list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.Fields.Title, "title", "", "Task list title")
	addJSONInputFlags(cmd, &body, "body", "Request body")

	return cmd
}

func newUpdateTaskListCmd(a *app, use string) *cobra.Command {
	var (
		c    command.UpdateTaskList
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Update a task list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.Fields.Title, "title", "", "Task list title")
	addJSONInputFlags(cmd, &body, "body", "Request body")
	mustRequire(cmd, "tasklist")

	return cmd
}

func newDeleteTaskListCmd(a *app, use string) *cobra.Command {
	var c command.DeleteTaskList

	cmd := &cobra.Command{
		Use:   use,
		Short: "Delete a task list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	mustRequire(cmd, "tasklist")

	return cmd
}

func newListTasksCmd(a *app, use string) *cobra.Command {
	var (
		c command.ListTasks

		showCompleted, showDeleted, showHidden, showAssigned optionalBool
	)

	cmd := &cobra.Command{
		Use:     use,
		Short:   "List tasks",
		Example: `  calendarctl tasks list --tasklist @default --show-completed false`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.ShowCompleted = showCompleted.value
			c.ShowDeleted = showDeleted.value
			c.ShowHidden = showHidden.value
			c.ShowAssigned = showAssigned.value
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.CompletedMax, "completed-max", "", "RFC3339 upper bound for completion time")
	cmd.Flags().StringVar(&c.CompletedMin, "completed-min", "", "RFC3339 lower bound for completion time")
	cmd.Flags().StringVar(&c.DueMax, "due-max", "", "RFC3339 upper bound for due date")
	cmd.Flags().StringVar(&c.DueMin, "due-min", "", "RFC3339 lower bound for due date")
	cmd.Flags().IntVar(&c.MaxResults, "max-results", 0, "Max results")
	cmd.Flags().StringVar(&c.PageToken, "page-token", "", "Page token")
	cmd.Flags().Var(&showCompleted, "show-completed", "Include completed tasks (true/false)")
	cmd.Flags().Var(&showDeleted, "show-deleted", "Include deleted tasks (true/false)")
	cmd.Flags().Var(&showHidden, "show-hidden", "Include hidden tasks (true/false)")
	cmd.Flags().Var(&showAssigned, "show-assigned", "Include assigned tasks (true/false)")
	cmd.Flags().StringVar(&c.UpdatedMin, "updated-min", "", "RFC3339 lower bound for last modification time")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "tasklist")

	return cmd
}

func newGetTaskCmd(a *app, use string) *cobra.Command {
	var c command.GetTask

	cmd := &cobra.Command{
		Use:   use,
		Short: "Get a task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.TaskID, "task-id", "", "Task ID")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "tasklist", "task-id")

	return cmd
}

// addTaskFieldFlags registers the structured task fields shared by create
// and update.
func addTaskFieldFlags(cmd *cobra.Command, f *builder.TaskFields) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "Task notes")
	cmd.Flags().StringVar(&f.Due, "due", "", "RFC3339 due date")
	cmd.Flags().StringVar(&f.Status, "status", "", "needsAction|completed")
	cmd.Flags().StringVar(&f.Completed, "completed", "", "RFC3339 completion time")
}

func newCreateTaskCmd(a *app, use string) *cobra.Command {
	var (
		c    command.CreateTask
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Create a task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	addTaskFieldFlags(cmd, &c.Fields)
	cmd.Flags().StringVar(&c.Parent, "parent", "", "Parent task ID")
	cmd.Flags().StringVar(&c.Previous, "previous", "", "Previous sibling task ID")
	addJSONInputFlags(cmd, &body, "body", "Request body")
	mustRequire(cmd, "tasklist")

	return cmd
}

func newUpdateTaskCmd(a *app, use string) *cobra.Command {
	var (
		c    command.UpdateTask
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Update a task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.TaskID, "task-id", "", "Task ID")
	addTaskFieldFlags(cmd, &c.Fields)
	addJSONInputFlags(cmd, &body, "body", "Request body")
	mustRequire(cmd, "tasklist", "task-id")

	return cmd
}

func newDeleteTaskCmd(a *app, use string) *cobra.Command {
	var c command.DeleteTask

	cmd := &cobra.Command{
		Use:   use,
		Short: "Delete a task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.TaskID, "task-id", "", "Task ID")
	mustRequire(cmd, "tasklist", "task-id")

	return cmd
}

func newMoveTaskCmd(a *app, use string) *cobra.Command {
	var c command.MoveTask

	cmd := &cobra.Command{
		Use:   use,
		Short: "Move a task",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	cmd.Flags().StringVar(&c.TaskID, "task-id", "", "Task ID")
	cmd.Flags().StringVar(&c.Parent, "parent", "", "New parent task ID")
	cmd.Flags().StringVar(&c.Previous, "previous", "", "New previous sibling task ID")
	cmd.Flags().StringVar(&c.DestinationTaskList, "destination-tasklist", "", "Destination task list ID")
	mustRequire(cmd, "tasklist", "task-id")

	return cmd
}

func newClearTasksCmd(a *app, use string) *cobra.Command {
	var c command.ClearTasks

	cmd := &cobra.Command{
		Use:   use,
		Short: "Clear completed tasks",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.TaskListID, "tasklist", "", "Task list ID")
	mustRequire(cmd, "tasklist")

	return cmd
}
