package command

import (
	"fmt"

	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/google"
)

// Auth selects the credential for a command. Empty fields fall back to the
// configured token path and the default scopes of the command's service.
type Auth struct {
	TokenPath string
	Scopes    []string
}

// Credentials returns the command's credential selection.
func (a Auth) Credentials() Auth {
	return a
}

func (Auth) isCommand() {}

// Command is one of the typed command variants defined in this package.
// Every variant embeds Auth.
type Command interface {
	Credentials() Auth
	isCommand()
}

// Plan is a command translated into a request.
type Plan struct {
	// Name identifies the command in logs, spans and metrics, e.g. "events.list".
	Name string

	// Operation is the coarse operation type used as a metric label.
	Operation string

	Service google.Service
	Request api.Request
}

// Build validates c and translates it into a Plan. It performs no I/O
// other than reading JSON input files.
func Build(c Command) (Plan, error) {
	var (
		plan Plan
		err  error
	)

	switch c := c.(type) {
	case Call:
		plan, err = c.plan()

	case ListCalendars:
		plan, err = c.plan()
	case GetCalendar:
		plan, err = c.plan()
	case ListEvents:
		plan, err = c.plan()
	case GetEvent:
		plan, err = c.plan()
	case CreateEvent:
		plan, err = c.plan()
	case UpdateEvent:
		plan, err = c.plan()
	case DeleteEvent:
		plan, err = c.plan()
	case FreeBusy:
		plan, err = c.plan()

	case ListTaskLists:
		plan, err = c.plan()
	case GetTaskList:
		plan, err = c.plan()
	case CreateTaskList:
		plan, err = c.plan()
	case UpdateTaskList:
		plan, err = c.plan()
	case DeleteTaskList:
		plan, err = c.plan()
	case ListTasks:
		plan, err = c.plan()
	case GetTask:
		plan, err = c.plan()
	case CreateTask:
		plan, err = c.plan()
	case UpdateTask:
		plan, err = c.plan()
	case DeleteTask:
		plan, err = c.plan()
	case MoveTask:
		plan, err = c.plan()
	case ClearTasks:
		plan, err = c.plan()

	default:
		return Plan{}, fmt.Errorf("unknown command type %T", c)
	}

	if err != nil {
		return Plan{}, err
	}
	plan.Request.Operation = plan.Name
	return plan, nil
}

func newPlan(name, operation string, svc google.Service, method, target string) Plan {
	return Plan{
		Name:      name,
		Operation: operation,
		Service:   svc,
		Request:   api.Request{Method: method, Target: target},
	}
}

// missing returns the names whose values are empty, in order.
func missing(pairs ...string) []string {
	var names []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			names = append(names, pairs[i])
		}
	}
	return names
}
