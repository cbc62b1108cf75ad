package observability

import (
	"context"
	"errors"
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry bundles the recorders handed to a container. Metrics are kept in
// memory and reported through Summary; finished spans are written to the
// logger at debug level.
type Telemetry struct {
	Metrics MetricsRecorder
	Spans   SpanManager

	reader *sdkmetric.ManualReader
	mp     *sdkmetric.MeterProvider
	tp     *sdktrace.TracerProvider
	logger *slog.Logger
}

// NewTelemetry builds SDK-backed recorders for whichever of metrics and
// tracing is enabled; the other side gets a no-op.
func NewTelemetry(metrics, tracing bool, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = Discard()
	}
	t := &Telemetry{Metrics: NoopMetrics{}, Spans: NoopSpanManager{}, logger: logger}

	if metrics {
		t.reader = sdkmetric.NewManualReader()
		t.mp = sdkmetric.NewMeterProvider(sdkmetric.WithReader(t.reader))
		rec, err := NewMetricsRecorder(t.mp)
		if err != nil {
			return nil, err
		}
		t.Metrics = rec
	}

	if tracing {
		t.tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(&logExporter{logger: logger}))
		t.Spans = NewSpanManager(t.tp)
	}
	return t, nil
}

// Summary logs the current value of every counter and the count of every
// histogram. It is a no-op when metrics are disabled.
func (t *Telemetry) Summary(ctx context.Context) error {
	if t.reader == nil {
		return nil
	}
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					service, _ := dp.Attributes.Value("service")
					t.logger.Info("metric", slog.String("name", m.Name), slog.String("service", service.AsString()), slog.Int64("value", dp.Value))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					service, _ := dp.Attributes.Value("service")
					t.logger.Info("metric", slog.String("name", m.Name), slog.String("service", service.AsString()),
						slog.Uint64("count", dp.Count), slog.Float64("sum", dp.Sum))
				}
			}
		}
	}
	return nil
}

// Shutdown flushes and stops the SDK providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// logExporter writes finished spans to a slog.Logger.
type logExporter struct {
	logger *slog.Logger
}

func (e *logExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []slog.Attr{
			slog.String("span", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.Duration("elapsed", s.EndTime().Sub(s.StartTime())),
			slog.String("status", s.Status().Code.String()),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.LogAttrs(ctx, slog.LevelDebug, "span", attrs...)
	}
	return nil
}

func (e *logExporter) Shutdown(context.Context) error { return nil }
