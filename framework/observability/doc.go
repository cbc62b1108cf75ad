// Package observability provides the logging, metrics and tracing hooks the
// container reports resolutions through.
//
// Logging uses log/slog. Metrics and tracing use OpenTelemetry; both are
// opt-in and fall back to no-op implementations.
//
//	tel, err := observability.NewTelemetry(cfg.Telemetry.Metrics, cfg.Telemetry.Tracing, logger)
//	c := container.New(
//	    container.WithLogger(logger),
//	    container.WithMetrics(tel.Metrics),
//	    container.WithTracing(tel.Spans),
//	)
//	defer tel.Shutdown(ctx)
package observability
