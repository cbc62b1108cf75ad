package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for container spans.
const TracerName = "github.com/km-arc/go-eustace"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for resolving key. Nested resolutions
	// issued from inside a factory become children of their caller's span.
	StartResolveSpan(ctx context.Context, key string, depth int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager backed by tp. A nil tp uses the
// global OTel tracer provider.
func NewSpanManager(tp trace.TracerProvider) SpanManager {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &otelSpanManager{tracer: tp.Tracer(TracerName)}
}

// StartResolveSpan starts a span named "eustace.resolve".
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, key string, depth int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "eustace.resolve",
		trace.WithAttributes(
			attribute.String("service.key", key),
			attribute.Int("resolve.depth", depth),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
