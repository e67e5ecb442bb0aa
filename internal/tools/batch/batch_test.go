package batch

import (
	"context"
	"errors"
	"testing"
)

func TestIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []string
		wantErr bool
	}{
		{name: "single string", input: "task1", want: []string{"task1"}},
		{name: "array of strings", input: []any{"t1", " t2 ", "t3"}, want: []string{"t1", "t2", "t3"}},
		{name: "JSON string array", input: `["t1", "t2"]`, want: []string{"t1", "t2"}},
		{name: "string starting with bracket", input: `[x] task`, want: []string{`[x] task`}},
		{name: "nil input", input: nil, wantErr: true},
		{name: "empty string", input: "  ", wantErr: true},
		{name: "empty array", input: []any{}, wantErr: true},
		{name: "JSON string empty array", input: `[]`, wantErr: true},
		{name: "array with non-string", input: []any{"t1", 2}, wantErr: true},
		{name: "array with empty string", input: []any{"t1", ""}, wantErr: true},
		{name: "invalid type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDs(tt.input, "taskIds")
			if (err != nil) != tt.wantErr {
				t.Fatalf("IDs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("IDs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("IDs()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRun(t *testing.T) {
	fn := func(_ context.Context, id string) (any, error) {
		if id == "t2" {
			return nil, errors.New("HTTP 404: not found")
		}
		return map[string]any{"id": id}, nil
	}

	summary := Run(context.Background(), []string{"t1", "t2", "t3"}, fn)

	if summary.Total != 3 || summary.Successful != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.Results[1].Status != StatusError || summary.Results[1].Error != "HTTP 404: not found" {
		t.Errorf("results[1] = %+v", summary.Results[1])
	}
	if summary.Results[2].Status != StatusSuccess {
		t.Errorf("results[2].Status = %s, want success", summary.Results[2].Status)
	}
	if got := summary.Results[0].Result.(map[string]any)["id"]; got != "t1" {
		t.Errorf("results[0].Result id = %v, want t1", got)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	summary := Run(ctx, []string{"t1", "t2"}, func(context.Context, string) (any, error) {
		calls++
		return nil, nil
	})

	if calls != 0 {
		t.Errorf("fn called %d times after cancellation", calls)
	}
	if summary.Failed != 2 {
		t.Errorf("Failed = %d, want 2", summary.Failed)
	}
}
