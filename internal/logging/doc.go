// Package logging provides structured logging utilities for calendarctl.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger for a command invocation:
//
//	logger := logging.New("debug", os.Stderr)
//	logger = logging.WithCommand(logger, "events.create")
//	logger.Debug("dispatching request", logging.Service("calendar"))
//
// # Security Considerations
//
// Access and refresh tokens are never logged directly; use SanitizeToken or
// Token to record only their length.
package logging
