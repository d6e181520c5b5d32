package reqctx

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo is the loggable part of an OpenTelemetry span context.
type TraceInfo struct {
	// TraceID is a 32-character hex string.
	TraceID string

	// SpanID is a 16-character hex string.
	SpanID string

	Sampled bool
}

// WithTrace stores trace info in the context.
func WithTrace(ctx context.Context, t *TraceInfo) context.Context {
	return context.WithValue(ctx, keyTrace, t)
}

// TraceFromContext retrieves trace info from the context.
func TraceFromContext(ctx context.Context) (*TraceInfo, bool) {
	t, ok := ctx.Value(keyTrace).(*TraceInfo)
	return t, ok && t != nil
}

// TraceIDFromContext returns the trace ID, or empty string if not set.
func TraceIDFromContext(ctx context.Context) string {
	t, ok := TraceFromContext(ctx)
	if !ok {
		return ""
	}
	return t.TraceID
}

// FromSpanContext converts an OpenTelemetry span context. It returns nil for
// an invalid span context.
func FromSpanContext(sc trace.SpanContext) *TraceInfo {
	if !sc.IsValid() {
		return nil
	}
	return &TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
		Sampled: sc.IsSampled(),
	}
}
