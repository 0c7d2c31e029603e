package telemetry

import (
	"context"
	"errors"

	"github.com/shelfsync/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Telemetry bundles the tracer, meter and logger providers of the process
// together with the continuous profiler.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup builds every provider from configuration. Disabled signals get no-op providers.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	tp, err := NewTracerProvider(ctx, Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		return nil, err
	}

	mp, err := NewMeterProvider(ctx, MetricsConfig{
		Enabled:           cfg.Enabled && cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ExportInterval:    cfg.MetricsInterval,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	lp, err := NewLoggerProvider(ctx, LogsConfig{
		Enabled:           cfg.Enabled && cfg.LogsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		_ = errors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
		return nil, err
	}

	prof, err := NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.ProfilingAddress,
		ApplicationName: cfg.ServiceName,
		Extended:        cfg.ProfilingExtended,
	}, logger)
	if err != nil {
		_ = errors.Join(lp.Shutdown(ctx), mp.Shutdown(ctx), tp.Shutdown(ctx))
		return nil, err
	}

	return &Telemetry{Tracer: tp, Meter: mp, Logs: lp, Profiler: prof}, nil
}

// TracerProvider returns the provider for instrumentation, linked to
// profiles when the profiler runs.
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	return t.Profiler.WrapTracerProvider(t.Tracer.Provider())
}

// Shutdown flushes and stops every provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Profiler.Stop(),
		t.Logs.Shutdown(ctx),
		t.Meter.Shutdown(ctx),
		t.Tracer.Shutdown(ctx),
	)
}
