package builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
)

// Source says where an Input's JSON comes from.
type Source int

const (
	SourceNone Source = iota
	SourceInline
	SourceFile
)

// InlineSource names inline JSON in error messages.
const InlineSource = "inline JSON"

// String implements fmt.Stringer
func (s Source) String() string {
	switch s {
	case SourceInline:
		return "inline"
	case SourceFile:
		return "file"
	default:
		return "none"
	}
}

// Input is an optional JSON value given inline or as a file path, never both.
// The zero value is an absent input.
type Input struct {
	source Source
	value  string
}

// NewInput builds an Input from an inline JSON string and a file path.
// Empty strings mean "not given". Giving both fails with
// ErrConflictingInputSources.
func NewInput(inline, file string) (Input, error) {
	switch {
	case inline != "" && file != "":
		return Input{}, usageError(ErrConflictingInputSources, "")
	case file != "":
		return Input{source: SourceFile, value: file}, nil
	case inline != "":
		return Input{source: SourceInline, value: inline}, nil
	default:
		return Input{}, nil
	}
}

// InlineInput is shorthand for an Input holding inline JSON.
func InlineInput(inline string) Input {
	in, _ := NewInput(inline, "")
	return in
}

// Source returns where the input comes from.
func (in Input) Source() Source {
	return in.source
}

// Present reports whether an inline value or a file was given.
func (in Input) Present() bool {
	return in.source != SourceNone
}

// Resolve reads and decodes the input. present is false when nothing was
// given or the JSON is a literal null. Numbers are kept as json.Number so
// they are sent back exactly as written.
func (in Input) Resolve() (value any, present bool, err error) {
	var data []byte
	var source string

	switch in.source {
	case SourceNone:
		return nil, false, nil
	case SourceFile:
		source = in.value
		data, err = os.ReadFile(in.value)
		if err != nil {
			return nil, false, &MalformedJSONError{Source: source, Err: err}
		}
	default:
		source = InlineSource
		data = []byte(in.value)
	}

	value, err = decodeJSON(data)
	if err != nil {
		return nil, false, &MalformedJSONError{Source: source, Err: err}
	}
	return value, value != nil, nil
}

// ResolveObject is Resolve for inputs that must be JSON objects, such as
// query parameters.
func (in Input) ResolveObject() (map[string]any, bool, error) {
	value, present, err := in.Resolve()
	if err != nil || !present {
		return nil, false, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false, usageError(ErrInvalidParams, "got "+jsonKind(value))
	}
	return obj, true, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	default:
		return "null"
	}
}
