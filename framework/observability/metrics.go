package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope used for container metrics.
const MeterName = "github.com/km-arc/go-eustace"

// MetricsRecorder records container metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records one factory lookup-and-invoke for key, at the
	// given nesting depth, with its duration and error status.
	RecordResolution(ctx context.Context, key string, depth int, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions metric.Int64Counter
	errors      metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewMetricsRecorder returns a MetricsRecorder backed by mp. A nil mp uses
// the global OTel meter provider.
func NewMetricsRecorder(mp metric.MeterProvider) (MetricsRecorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(MeterName)

	resolutions, err := meter.Int64Counter("eustace.resolutions",
		metric.WithDescription("Number of service resolutions"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("eustace.resolution.errors",
		metric.WithDescription("Number of failed service resolutions"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("eustace.resolution.latency_ms",
		metric.WithDescription("Service resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions: resolutions,
		errors:      errs,
		latency:     latency,
	}, nil
}

// RecordResolution records a resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, key string, depth int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("service", key),
		attribute.Bool("nested", depth > 0),
	)

	m.resolutions.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.errors.Add(ctx, 1, attrs)
	}
}
