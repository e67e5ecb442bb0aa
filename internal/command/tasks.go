package command

import (
	"net/url"
	"strconv"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

// ListTaskLists lists the user's task lists.
type ListTaskLists struct {
	Auth

	MaxResults int
	PageToken  string
	Fields     string
}

func (c ListTaskLists) plan() (Plan, error) {
	p := newPlan("tasklists.list", instrumentation.OperationList, google.ServiceTasks,
		"GET", "/users/@me/lists")
	p.Request.Params.AddInt("maxResults", c.MaxResults)
	p.Request.Params.AddString("pageToken", c.PageToken)
	p.Request.Params.AddString("fields", c.Fields)
	return p, nil
}

// GetTaskList fetches one task list.
type GetTaskList struct {
	Auth

	TaskListID string
	Fields     string
}

func (c GetTaskList) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("tasklists.get", instrumentation.OperationGet, google.ServiceTasks,
		"GET", taskListPath(c.TaskListID))
	p.Request.Params.AddString("fields", c.Fields)
	return p, nil
}

// CreateTaskList inserts a task list. Body, when given, replaces Fields.
type CreateTaskList struct {
	Auth

	Fields builder.TaskListFields
	Body   builder.Input
}

func (c CreateTaskList) plan() (Plan, error) {
	body, err := builder.CreateBody(c.Body, c.Fields, "title")
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("tasklists.create", instrumentation.OperationCreate, google.ServiceTasks,
		"POST", "/users/@me/lists")
	p.Request.Body = body
	return p, nil
}

// UpdateTaskList patches a task list. Body, when given, replaces Fields.
type UpdateTaskList struct {
	Auth

	TaskListID string
	Fields     builder.TaskListFields
	Body       builder.Input
}

func (c UpdateTaskList) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	body, err := builder.UpdateBody(c.Body, c.Fields)
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("tasklists.update", instrumentation.OperationUpdate, google.ServiceTasks,
		"PATCH", taskListPath(c.TaskListID))
	p.Request.Body = body
	return p, nil
}

// DeleteTaskList deletes a task list.
type DeleteTaskList struct {
	Auth

	TaskListID string
}

func (c DeleteTaskList) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	return newPlan("tasklists.delete", instrumentation.OperationDelete, google.ServiceTasks,
		"DELETE", taskListPath(c.TaskListID)), nil
}

// ListTasks lists the tasks of a task list. The Show* filters are sent
// only when set.
type ListTasks struct {
	Auth

	TaskListID    string
	CompletedMax  string
	CompletedMin  string
	DueMax        string
	DueMin        string
	MaxResults    int
	PageToken     string
	ShowCompleted *bool
	ShowDeleted   *bool
	ShowHidden    *bool
	ShowAssigned  *bool
	UpdatedMin    string
	Fields        string
}

func (c ListTasks) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("tasks.list", instrumentation.OperationList, google.ServiceTasks,
		"GET", tasksPath(c.TaskListID))
	params := &p.Request.Params
	params.AddString("completedMax", c.CompletedMax)
	params.AddString("completedMin", c.CompletedMin)
	params.AddString("dueMax", c.DueMax)
	params.AddString("dueMin", c.DueMin)
	params.AddInt("maxResults", c.MaxResults)
	params.AddString("pageToken", c.PageToken)
	for _, f := range []struct {
		key   string
		value *bool
	}{
		{"showCompleted", c.ShowCompleted},
		{"showDeleted", c.ShowDeleted},
		{"showHidden", c.ShowHidden},
		{"showAssigned", c.ShowAssigned},
	} {
		if f.value != nil {
			params.Add(f.key, strconv.FormatBool(*f.value))
		}
	}
	params.AddString("updatedMin", c.UpdatedMin)
	params.AddString("fields", c.Fields)
	return p, nil
}

// GetTask fetches one task.
type GetTask struct {
	Auth

	TaskListID string
	TaskID     string
	Fields     string
}

func (c GetTask) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID, "task ID", c.TaskID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("tasks.get", instrumentation.OperationGet, google.ServiceTasks,
		"GET", taskPath(c.TaskListID, c.TaskID))
	p.Request.Params.AddString("fields", c.Fields)
	return p, nil
}

// CreateTask inserts a task, optionally below Parent and after Previous.
// Body, when given, replaces Fields.
type CreateTask struct {
	Auth

	TaskListID string
	Fields     builder.TaskFields
	Parent     string
	Previous   string
	Body       builder.Input
}

func (c CreateTask) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	body, err := builder.CreateBody(c.Body, c.Fields, "title")
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("tasks.create", instrumentation.OperationCreate, google.ServiceTasks,
		"POST", tasksPath(c.TaskListID))
	p.Request.Params.AddString("parent", c.Parent)
	p.Request.Params.AddString("previous", c.Previous)
	p.Request.Body = body
	return p, nil
}

// UpdateTask patches a task. Body, when given, replaces Fields.
type UpdateTask struct {
	Auth

	TaskListID string
	TaskID     string
	Fields     builder.TaskFields
	Body       builder.Input
}

func (c UpdateTask) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID, "task ID", c.TaskID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	body, err := builder.UpdateBody(c.Body, c.Fields)
	if err != nil {
		return Plan{}, err
	}
	p := newPlan("tasks.update", instrumentation.OperationUpdate, google.ServiceTasks,
		"PATCH", taskPath(c.TaskListID, c.TaskID))
	p.Request.Body = body
	return p, nil
}

// DeleteTask deletes a task.
type DeleteTask struct {
	Auth

	TaskListID string
	TaskID     string
}

func (c DeleteTask) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID, "task ID", c.TaskID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	return newPlan("tasks.delete", instrumentation.OperationDelete, google.ServiceTasks,
		"DELETE", taskPath(c.TaskListID, c.TaskID)), nil
}

// MoveTask repositions a task, optionally into another task list.
type MoveTask struct {
	Auth

	TaskListID          string
	TaskID              string
	Parent              string
	Previous            string
	DestinationTaskList string
}

func (c MoveTask) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID, "task ID", c.TaskID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	p := newPlan("tasks.move", instrumentation.OperationMove, google.ServiceTasks,
		"POST", taskPath(c.TaskListID, c.TaskID)+"/move")
	p.Request.Params.AddString("parent", c.Parent)
	p.Request.Params.AddString("previous", c.Previous)
	p.Request.Params.AddString("destinationTasklist", c.DestinationTaskList)
	return p, nil
}

// ClearTasks hides all completed tasks of a task list.
type ClearTasks struct {
	Auth

	TaskListID string
}

func (c ClearTasks) plan() (Plan, error) {
	if names := missing("task list ID", c.TaskListID); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}
	return newPlan("tasks.clear", instrumentation.OperationClear, google.ServiceTasks,
		"POST", "/lists/"+url.PathEscape(c.TaskListID)+"/clear"), nil
}

func taskListPath(taskListID string) string {
	return "/users/@me/lists/" + url.PathEscape(taskListID)
}

func tasksPath(taskListID string) string {
	return "/lists/" + url.PathEscape(taskListID) + "/tasks"
}

func taskPath(taskListID, taskID string) string {
	return tasksPath(taskListID) + "/" + url.PathEscape(taskID)
}
