package builder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflictingInputSources indicates both inline JSON and a JSON file were given.
	ErrConflictingInputSources = errors.New("use only one of inline JSON or a JSON file")

	// ErrMissingRequiredFields indicates a create command lacks fields it needs.
	ErrMissingRequiredFields = errors.New("missing required fields")

	// ErrNoUpdateFieldsProvided indicates an update command would send an empty body.
	ErrNoUpdateFieldsProvided = errors.New("provide fields to update or pass a body")

	// ErrInvalidBoolean indicates a value that is not a recognized boolean spelling.
	ErrInvalidBoolean = errors.New("expected a boolean value (true/false)")

	// ErrInvalidParams indicates query parameters that are not a JSON object.
	ErrInvalidParams = errors.New("query parameters must be a JSON object")
)

// UsageError is a problem with the inputs of a command, detected before any
// credential is loaded or request sent. Err is one of the sentinels above.
type UsageError struct {
	Err    error
	Detail string
}

// Error implements the error interface
func (e *UsageError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

// Unwrap returns the sentinel.
func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageError(err error, detail string) *UsageError {
	return &UsageError{Err: err, Detail: detail}
}

// MissingFields reports required command inputs that were not given.
func MissingFields(names ...string) error {
	return usageError(ErrMissingRequiredFields, strings.Join(names, ", "))
}

// MalformedJSONError reports JSON input that could not be read or parsed.
// Source is "inline JSON" or the path of the file.
type MalformedJSONError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying read or parse error.
func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}
