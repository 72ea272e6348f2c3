package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output is opt-in for production
// aggregation; the default text handler keeps local development readable.
func New(format string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, nil)
	default:
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
