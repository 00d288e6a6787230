package logging

import "log/slog"

// Common attribute keys used across components.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldTitle     = "title"
	FieldLocator   = "locator"
	FieldState     = "state"
)

// String returns a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Bool returns a bool attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Error returns an attribute for an error value under the "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
