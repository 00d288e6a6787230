// Package logging constructs the process-wide slog.Logger. Console output
// uses a compact single-line handler; a JSON handler is available for
// machine consumption. Helpers wrap slog.Attr constructors so call sites
// stay terse.
package logging
