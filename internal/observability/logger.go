package observability

import (
	"io"
	"log/slog"
	"strings"
)

// NewLoggerTo builds a slog.Logger writing to w. Format "text" selects the
// text handler; anything else is JSON. The service uses the shared
// NewLogger, which always writes to stdout; catalogctl needs stderr because
// its JSON output owns stdout.
func NewLoggerTo(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name to slog.Level, defaulting to info. It
// accepts the same names as the shared logger.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
