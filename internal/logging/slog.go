package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Attribute keys.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyCommand   = "command"
	KeyDuration  = "duration"
	KeyError     = "error"
	KeyPath      = "path"
)

// New returns a text logger writing to w at the given level.
// Unknown level names fall back to warn so that a CLI stays quiet by default.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// WithCommand returns a logger with the command attribute set.
func WithCommand(logger *slog.Logger, command string) *slog.Logger {
	return logger.With(slog.String(KeyCommand, command))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns a slog attribute for the service name.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Path returns a slog attribute for a filesystem path or URL path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Err returns an error attribute. A nil err yields an empty group, which
// handlers omit.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken replaces a token with its length. No prefix is kept.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// Token returns a slog attribute carrying a sanitized token.
func Token(key, token string) slog.Attr {
	return slog.String(key, SanitizeToken(token))
}
