// Package logging is the project's logging seam: the HTTP layer, the import
// pipeline, and app startup all log through the Logger interface, and main
// wires in the slog-backed implementation.
package logging

import "context"

// Logger is a leveled, context-aware logger. The trailing args are
// alternating key-value pairs:
//
//	log.Info(ctx, "import finished", "imported", imported, "skipped", skipped)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose entries always carry the given
	// key-value pairs. Services use it to tag their module name once.
	With(args ...any) Logger
}
