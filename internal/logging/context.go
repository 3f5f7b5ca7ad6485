package logging

import (
	"context"
	"log/slog"
	"os"
)

type requestLoggerContextKey struct{}

// FromContext returns the logger stored in the context, or a JSON fallback logger
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(requestLoggerContextKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("logger", "fallback"))
	}
	return logger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerContextKey{}, logger)
}

// AddMetaToContext stores a logger with the given attributes added in the context
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	return AddToContext(ctx, FromContext(ctx).With(args...))
}
