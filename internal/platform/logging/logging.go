// Package logging builds the service's slog loggers and carries them through
// request contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//
// Middleware stores a request-scoped logger with WithLogger; downstream code
// recovers it with FromContext. Error logs follow one convention throughout
// the service: an operation name, the entity identifiers involved, and the
// wrapped error chain under the "error" key:
//
//	logger.ErrorContext(ctx, "failed to fetch submission",
//	    slog.String("operation", "GetStatus"),
//	    slog.Int64("submission_id", id),
//	    slog.Any("error", err),
//	)
//
// request_id and correlation_id arrive on the context logger automatically
// when the logging middleware is installed.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type loggerKey struct{}

// New returns a logger writing to w. level is one of "debug", "info",
// "warn", "error" (case-insensitive, anything else means info). format
// "text" selects the text handler, everything else JSON. Debug level also
// turns on source locations.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := levelFrom(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores logger on the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the context's logger, or slog.Default() when none was
// stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func levelFrom(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
