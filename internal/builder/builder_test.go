package builder

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeObject(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		timeZone string
		want     map[string]any
	}{
		{
			name:     "naive date-time gets zone",
			value:    "2024-01-01T10:00:00",
			timeZone: "Europe/Berlin",
			want:     map[string]any{"dateTime": "2024-01-01T10:00:00", "timeZone": "Europe/Berlin"},
		},
		{
			name:     "UTC date-time keeps no zone",
			value:    "2024-01-01T10:00:00Z",
			timeZone: "Europe/Berlin",
			want:     map[string]any{"dateTime": "2024-01-01T10:00:00Z"},
		},
		{
			name:     "positive offset keeps no zone",
			value:    "2024-01-01T10:00:00+02:00",
			timeZone: "Europe/Berlin",
			want:     map[string]any{"dateTime": "2024-01-01T10:00:00+02:00"},
		},
		{
			name:     "negative offset keeps no zone",
			value:    "2024-01-01T10:00:00-05:00",
			timeZone: "America/New_York",
			want:     map[string]any{"dateTime": "2024-01-01T10:00:00-05:00"},
		},
		{
			name:     "date ignores zone",
			value:    "2024-01-01",
			timeZone: "Europe/Berlin",
			want:     map[string]any{"date": "2024-01-01"},
		},
		{
			name:  "naive date-time without zone",
			value: "2024-01-01T10:00:00",
			want:  map[string]any{"dateTime": "2024-01-01T10:00:00"},
		},
		{
			name:     "short value with T",
			value:    "T1",
			timeZone: "UTC",
			want:     map[string]any{"dateTime": "T1", "timeZone": "UTC"},
		},
		{
			name:     "anything without T is a date",
			value:    "tomorrow",
			timeZone: "UTC",
			want:     map[string]any{"date": "tomorrow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeObject(tt.value, tt.timeZone))
		})
	}
}

func TestNewInput(t *testing.T) {
	in, err := NewInput("", "")
	require.NoError(t, err)
	assert.Equal(t, SourceNone, in.Source())
	assert.False(t, in.Present())

	in, err = NewInput(`{"a":1}`, "")
	require.NoError(t, err)
	assert.Equal(t, SourceInline, in.Source())

	in, err = NewInput("", "body.json")
	require.NoError(t, err)
	assert.Equal(t, SourceFile, in.Source())

	_, err = NewInput(`{"a":1}`, "body.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflictingInputSources)

	var usage *UsageError
	assert.ErrorAs(t, err, &usage)
}

func TestInput_Resolve(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"summary":"From file","n":12345678901234567890}`), 0o600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"summary":`), 0o600))

	t.Run("absent", func(t *testing.T) {
		v, present, err := Input{}.Resolve()
		require.NoError(t, err)
		assert.False(t, present)
		assert.Nil(t, v)
	})

	t.Run("inline", func(t *testing.T) {
		v, present, err := InlineInput(`[1, "two"]`).Resolve()
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, []any{json.Number("1"), "two"}, v)
	})

	t.Run("file keeps large numbers exact", func(t *testing.T) {
		in, err := NewInput("", good)
		require.NoError(t, err)
		v, present, err := in.Resolve()
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, json.Number("12345678901234567890"), v.(map[string]any)["n"])
	})

	t.Run("null is absent", func(t *testing.T) {
		_, present, err := InlineInput("null").Resolve()
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("malformed inline", func(t *testing.T) {
		_, _, err := InlineInput(`{"a":`).Resolve()
		var malformed *MalformedJSONError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, InlineSource, malformed.Source)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, _, err := InlineInput(`{} {}`).Resolve()
		var malformed *MalformedJSONError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("malformed file names the path", func(t *testing.T) {
		in, err := NewInput("", bad)
		require.NoError(t, err)
		_, _, err = in.Resolve()
		var malformed *MalformedJSONError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, bad, malformed.Source)
		assert.Contains(t, err.Error(), bad)
	})

	t.Run("missing file", func(t *testing.T) {
		in, err := NewInput("", filepath.Join(dir, "nope.json"))
		require.NoError(t, err)
		_, _, err = in.Resolve()
		var malformed *MalformedJSONError
		require.ErrorAs(t, err, &malformed)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestInput_ResolveObject(t *testing.T) {
	obj, present, err := InlineInput(`{"maxResults": 5}`).ResolveObject()
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, map[string]any{"maxResults": json.Number("5")}, obj)

	_, _, err = InlineInput(`[1]`).ResolveObject()
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestEventFields_Assemble(t *testing.T) {
	body := EventFields{
		Summary:     "Standup",
		Start:       "2024-01-01T10:00:00",
		End:         "2024-01-01T10:15:00Z",
		TimeZone:    "Europe/Berlin",
		Location:    "Room 1",
		Description: "Daily",
		Attendees:   "a@example.com,, b@example.com",
		Recurrence:  []string{"RRULE:FREQ=DAILY"},
	}.Assemble()

	assert.Equal(t, map[string]any{
		"summary":     "Standup",
		"start":       map[string]any{"dateTime": "2024-01-01T10:00:00", "timeZone": "Europe/Berlin"},
		"end":         map[string]any{"dateTime": "2024-01-01T10:15:00Z"},
		"location":    "Room 1",
		"description": "Daily",
		"attendees": []any{
			map[string]any{"email": "a@example.com"},
			map[string]any{"email": "b@example.com"},
		},
		"recurrence": []string{"RRULE:FREQ=DAILY"},
	}, body)

	assert.Empty(t, EventFields{TimeZone: "UTC"}.Assemble(), "a zone alone produces nothing")
}

func TestTaskFields_Assemble(t *testing.T) {
	body := TaskFields{Title: "Buy milk", Due: "2024-01-02T00:00:00.000Z"}.Assemble()
	assert.Equal(t, map[string]any{"title": "Buy milk", "due": "2024-01-02T00:00:00.000Z"}, body)
}

func TestCreateBody(t *testing.T) {
	t.Run("override wins over fields", func(t *testing.T) {
		body, err := CreateBody(InlineInput(`{"summary":"X"}`),
			EventFields{Summary: "Y", Start: "2024-01-01", End: "2024-01-02"},
			"summary", "start", "end")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"summary": "X"}, body)
	})

	t.Run("override skips required check", func(t *testing.T) {
		body, err := CreateBody(InlineInput(`{}`), EventFields{}, "summary", "start", "end")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, body)
	})

	t.Run("fields", func(t *testing.T) {
		body, err := CreateBody(Input{},
			EventFields{Summary: "Y", Start: "2024-01-01", End: "2024-01-02"},
			"summary", "start", "end")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"summary": "Y",
			"start":   map[string]any{"date": "2024-01-01"},
			"end":     map[string]any{"date": "2024-01-02"},
		}, body)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := CreateBody(Input{}, EventFields{Summary: "Y"}, "summary", "start", "end")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequiredFields)
		assert.Contains(t, err.Error(), "start, end")
	})

	t.Run("malformed override", func(t *testing.T) {
		_, err := CreateBody(InlineInput(`{`), TaskListFields{Title: "x"}, "title")
		var malformed *MalformedJSONError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestUpdateBody(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		body, err := UpdateBody(Input{}, TaskFields{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "completed"}, body)
	})

	t.Run("override wins", func(t *testing.T) {
		body, err := UpdateBody(InlineInput(`{"title":"new"}`), TaskFields{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "new"}, body)
	})

	t.Run("no fields", func(t *testing.T) {
		_, err := UpdateBody(Input{}, TaskListFields{})
		assert.ErrorIs(t, err, ErrNoUpdateFieldsProvided)
	})

	t.Run("empty override", func(t *testing.T) {
		_, err := UpdateBody(InlineInput(`{}`), TaskListFields{Title: "ignored"})
		assert.ErrorIs(t, err, ErrNoUpdateFieldsProvided)
	})

	for _, override := range []string{`0`, `0.0`, `false`, `""`, `[]`} {
		t.Run("falsy override "+override, func(t *testing.T) {
			_, err := UpdateBody(InlineInput(override), TaskListFields{Title: "ignored"})
			assert.ErrorIs(t, err, ErrNoUpdateFieldsProvided)
		})
	}

	t.Run("non-zero scalar override", func(t *testing.T) {
		body, err := UpdateBody(InlineInput(`1`), TaskListFields{})
		require.NoError(t, err)
		assert.Equal(t, json.Number("1"), body)
	})
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "1", "yes", "y", " TRUE ", "Y"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "0", "no", "n", "No"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}

	_, err := ParseBool("maybe")
	assert.ErrorIs(t, err, ErrInvalidBoolean)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"primary", "team@example.com"}, SplitList("primary, team@example.com,"))
	assert.Nil(t, SplitList(""))
}
