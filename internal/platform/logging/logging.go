// Package logging builds the gateway's slog logger and carries it through
// request contexts.
//
// The logger is created once in main:
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
//
// Inbound middleware stores a request-scoped child in the context and later
// layers enrich it:
//
//	ctx = logging.WithLogger(ctx, logger.With(slog.String("request_id", id)))
//	ctx = logging.With(ctx, slog.String("client_locale", info.DBLocaleLanguage))
//	logging.FromContext(ctx).DebugContext(ctx, "sample fetched", slog.Int("sample_id", id))
//
// Failed operations log the operation name, the identifiers involved, and
// the full error via slog.Any("error", err).
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New returns a logger writing to w.
//
// level accepts anything slog.Level.UnmarshalText understands ("debug",
// "INFO", "warn+2", ...); anything else means info. format "text" selects
// the text handler and every other value selects JSON. Debug loggers
// include the source location.
//
// Every handler is wrapped with the masq redaction hook so tokens and
// client secrets never reach the output.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// With stores a child of the context logger carrying attrs. It returns ctx
// unchanged when attrs is empty.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
