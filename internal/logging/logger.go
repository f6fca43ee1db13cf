// Package logging defines the structured-logging interface shared by the
// sync and cache components. Implementations can wrap slog, zap, zerolog,
// etc.; the core never logs through a concrete backend directly.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "note synchronized", "local_id", id, "remote_id", remoteID)
type Logger interface {
	// Debug logs fine-grained diagnostic details.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value
	// pairs, e.g. a logger scoped to one drain run.
	With(args ...any) Logger
}
