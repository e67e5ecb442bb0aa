package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"leading slash", "https://www.googleapis.com/calendar/v3", "/freeBusy", "https://www.googleapis.com/calendar/v3/freeBusy"},
		{"slash forced", "https://www.googleapis.com/calendar/v3", "freeBusy", "https://www.googleapis.com/calendar/v3/freeBusy"},
		{"https verbatim", "https://www.googleapis.com/calendar/v3", "https://tasks.googleapis.com/tasks/v1/users/@me/lists", "https://tasks.googleapis.com/tasks/v1/users/@me/lists"},
		{"http verbatim", "https://www.googleapis.com/calendar/v3", "http://localhost:8080/x", "http://localhost:8080/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.base, tt.target))
		})
	}
}

func TestNormalizeMethod(t *testing.T) {
	for in, want := range map[string]string{
		"get":    "GET",
		" Post ": "POST",
		"patch":  "PATCH",
		"PUT":    "PUT",
		"delete": "DELETE",
	} {
		got, err := NormalizeMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeMethod("HEAD")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestParams_Values(t *testing.T) {
	var p Params
	p.AddString("q", "standup")
	p.AddString("empty", "")
	p.AddInt("maxResults", 25)
	p.AddInt("zero", 0)
	p.Add("showDeleted", false)
	p.Add("ratio", 0.5)
	p.Add("big", int64(1)<<40)
	p.Add("ids", []string{"a", "b"})
	p.Add("nested", map[string]any{"k": "v"})

	values, err := p.Values()
	require.NoError(t, err)

	assert.Equal(t, "standup", values.Get("q"))
	assert.Equal(t, "25", values.Get("maxResults"))
	assert.Equal(t, "false", values.Get("showDeleted"))
	assert.Equal(t, "0.5", values.Get("ratio"))
	assert.Equal(t, "1099511627776", values.Get("big"))
	assert.Equal(t, []string{"a", "b"}, values["ids"])
	assert.Equal(t, `{"k":"v"}`, values.Get("nested"))
	assert.NotContains(t, values, "empty")
	assert.NotContains(t, values, "zero")
}

func TestParamsFromMap(t *testing.T) {
	p := ParamsFromMap(map[string]any{
		"timeMin":    "2024-01-01T00:00:00Z",
		"maxResults": json.Number("5"),
		"alpha":      true,
	})

	require.Len(t, p, 3)
	assert.Equal(t, "alpha", p[0].Key)
	assert.Equal(t, "maxResults", p[1].Key)
	assert.Equal(t, "timeMin", p[2].Key)

	values, err := p.Values()
	require.NoError(t, err)
	assert.Equal(t, "true", values.Get("alpha"))
	assert.Equal(t, "5", values.Get("maxResults"))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 403, Payload: map[string]any{"error": "forbidden"}}
	assert.Equal(t, "HTTP 403: {\n  \"error\": \"forbidden\"\n}", err.Error())
}
