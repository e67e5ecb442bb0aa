package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedMethod indicates an HTTP method outside GET, POST, PUT, PATCH and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// APIError is a response with status code 400 or above. Payload is the
// decoded JSON error body, or {"error": raw} when the body is not JSON.
type APIError struct {
	StatusCode int
	Payload    any
}

// Error renders the status code followed by the payload as indented JSON.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, indentJSON(e.Payload))
}

// TransportError is a failure to obtain any response: connection refused,
// DNS failure, TLS error or a cancelled context.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
