package google

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialFileMissing indicates the credential file does not exist.
	ErrCredentialFileMissing = errors.New("token file not found")

	// ErrRefreshUnavailable indicates an expired credential without a refresh token.
	ErrRefreshUnavailable = errors.New("token expired and no refresh token is available; re-run the authorization flow")

	// ErrRefreshFailed indicates the identity provider rejected the refresh exchange.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrInvalidCredential indicates the credential file could not be parsed.
	ErrInvalidCredential = errors.New("invalid credential file")
)

// CredentialError is an authentication failure raised before any API call.
// It is distinct from transport and API errors so callers can tell
// "re-authorize" apart from "the network or service failed".
type CredentialError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *CredentialError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

// Unwrap returns the underlying cause.
func (e *CredentialError) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether err is, or wraps, a *CredentialError.
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}
