package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one command in a batch.
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates the results of a batch.
type Summary struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// IDs parses a parameter that holds either one ID, a JSON array of IDs
// given as a string, or an array of strings.
func IDs(param any, name string) ([]string, error) {
	switch v := param.(type) {
	case nil:
		return nil, fmt.Errorf("%s is required", name)
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", name)
		}
		if strings.HasPrefix(v, "[") {
			var items []any
			if err := json.Unmarshal([]byte(v), &items); err == nil {
				return IDs(items, name)
			}
		}
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", name)
		}
		ids := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", name, i)
			}
			if s = strings.TrimSpace(s); s == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", name, i)
			}
			ids = append(ids, s)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", name)
	}
}

// Run calls fn for each ID in order and collects the outcomes. A failing
// ID does not stop the batch; a cancelled context marks the remaining IDs
// as failed without calling fn.
func Run(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (any, error)) Summary {
	summary := Summary{
		Total:   len(ids),
		Results: make([]Result, 0, len(ids)),
	}

	for _, id := range ids {
		var (
			payload any
			err     = ctx.Err()
		)
		if err == nil {
			payload, err = fn(ctx, id)
		}

		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, Result{ID: id, Status: StatusError, Error: err.Error()})
			continue
		}
		summary.Successful++
		summary.Results = append(summary.Results, Result{ID: id, Status: StatusSuccess, Result: payload})
	}

	return summary
}
