package command

import (
	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
)

// Call is a passthrough request to an arbitrary endpoint. Relative paths
// are joined onto the base URL of Service, the calendar API by default.
type Call struct {
	Auth

	Method  string
	Path    string
	Params  builder.Input
	Body    builder.Input
	Service google.Service
}

func (c Call) plan() (Plan, error) {
	if names := missing("method", c.Method, "path", c.Path); len(names) > 0 {
		return Plan{}, builder.MissingFields(names...)
	}

	method, err := api.NormalizeMethod(c.Method)
	if err != nil {
		return Plan{}, &builder.UsageError{Err: err}
	}

	params, present, err := c.Params.ResolveObject()
	if err != nil {
		return Plan{}, err
	}
	body, _, err := c.Body.Resolve()
	if err != nil {
		return Plan{}, err
	}

	svc := c.Service
	if svc == "" {
		svc = google.ServiceCalendar
	}

	plan := newPlan("call", instrumentation.OperationCall, svc, method, c.Path)
	if present {
		plan.Request.Params = api.ParamsFromMap(params)
	}
	plan.Request.Body = body
	return plan, nil
}
