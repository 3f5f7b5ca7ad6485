package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// NewRootLogger creates the JSON logger every request logger derives from.
// Records are linked to Google Cloud traces when projectID is set.
func NewRootLogger(w io.Writer, projectID string) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, nil)
	if projectID != "" {
		handler = NewCloudTraceHandler(handler, projectID)
	}
	return slog.New(handler)
}

// NewCloudTraceHandler decorates a slog.Handler with the Google Cloud trace fields of the active span.
//
// NOTE: Only records logged with the *Context slog methods carry a span
func NewCloudTraceHandler(base slog.Handler, projectID string) slog.Handler {
	return &cloudTraceHandler{base: base, projectID: projectID}
}

type cloudTraceHandler struct {
	base      slog.Handler
	projectID string
}

func (h *cloudTraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// https://cloud.google.com/logging/docs/structured-logging#special-payload-fields
func (h *cloudTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return h.base.Handle(ctx, r)
	}

	r.AddAttrs(
		slog.String("logging.googleapis.com/trace", fmt.Sprintf("projects/%s/traces/%s", h.projectID, spanContext.TraceID())),
		slog.String("logging.googleapis.com/spanId", spanContext.SpanID().String()),
		slog.Bool("logging.googleapis.com/trace_sampled", spanContext.IsSampled()),
	)
	return h.base.Handle(ctx, r)
}

func (h *cloudTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &cloudTraceHandler{base: h.base.WithAttrs(attrs), projectID: h.projectID}
}

func (h *cloudTraceHandler) WithGroup(name string) slog.Handler {
	return &cloudTraceHandler{base: h.base.WithGroup(name), projectID: h.projectID}
}
