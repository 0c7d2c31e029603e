package telemetry

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumInt(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestInventoryMetrics_RecordSync(t *testing.T) {
	reader, provider := newManualMeter(t)
	m, err := NewInventoryMetrics(provider.Meter("test"))
	require.NoError(t, err)

	started := time.Now()
	report := inventory.NewSyncReport(uuid.New(), uuid.New(), started)
	report.RequestedCount = 10
	report.UpdatedCount = 6
	report.AddUnmatched("X-1", true)
	report.ChunkFailures = append(report.ChunkFailures, inventory.ChunkFailure{})
	report.Complete(started.Add(2 * time.Second))

	m.RecordSync(context.Background(), report)

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumInt(t, metrics["inventory_sync_total"]))
	assert.Equal(t, int64(10), sumInt(t, metrics["inventory_sync_skus_requested_total"]))
	assert.Equal(t, int64(6), sumInt(t, metrics["inventory_sync_skus_updated_total"]))
	assert.Equal(t, int64(1), sumInt(t, metrics["inventory_sync_skus_unmatched_total"]))
	assert.Equal(t, int64(1), sumInt(t, metrics["inventory_sync_chunk_failures_total"]))

	total := metrics["inventory_sync_total"].Data.(metricdata.Sum[int64])
	status, ok := total.DataPoints[0].Attributes.Value(AttrSyncStatus)
	require.True(t, ok)
	assert.Equal(t, string(inventory.SyncStatusPartial), status.AsString())

	hist, ok := metrics["inventory_sync_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.InDelta(t, 2.0, hist.DataPoints[0].Sum, 0.001)
}

func TestNewInventoryMetrics_NilMeter(t *testing.T) {
	_, err := NewInventoryMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

type testModel struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testModel{}))
	return db
}

func TestRegisterDBTracing(t *testing.T) {
	db := setupTestDB(t)
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	err := RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBName: "shelfsync"}, tp, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.WithContext(context.Background()).Create(&testModel{Name: "a"}).Error)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
	found := false
	for _, s := range spans {
		for _, kv := range s.Attributes() {
			if strings.HasPrefix(string(kv.Key), "db.") {
				found = true
			}
		}
	}
	assert.True(t, found, "span carries db attributes")
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db := setupTestDB(t)
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{}, tp, zap.NewNop()))
	require.NoError(t, db.Create(&testModel{Name: "a"}).Error)
	assert.Empty(t, recorder.Ended())
}

func TestDBPoolMetrics_Collect(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(3)

	reader, provider := newManualMeter(t)
	m, err := NewDBPoolMetrics(provider.Meter("test"), sqlDB, time.Hour, zap.NewNop())
	require.NoError(t, err)

	m.Start(context.Background())
	m.Stop()
	m.Stop()

	metrics := collect(t, reader)
	gauge, ok := metrics["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(3), gauge.DataPoints[0].Value)

	states, ok := metrics["db_pool_connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, states.DataPoints, 2)
}

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func TestLoggerProvider_Bridge(t *testing.T) {
	exporter := &memoryLogExporter{}
	lp := &LoggerProvider{
		provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter))),
		config:   LogsConfig{Enabled: true, ServiceName: "shelfsync"},
		logger:   zap.NewNop(),
	}
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	core, logs := observer.New(zapcore.DebugLevel)
	bridged := lp.Bridge(zap.New(core), zapcore.InfoLevel)

	bridged.Debug("debug only local")
	bridged.Info("sync finished")

	assert.Equal(t, 2, logs.Len(), "base core keeps every entry")
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	require.Len(t, exporter.records, 1)
	assert.Equal(t, "sync finished", exporter.records[0].Body().AsString())
}

func TestLoggerProvider_BridgeDisabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)
	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestSetup_Disabled(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "shelfsync"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled())
	assert.False(t, tel.Profiler.IsEnabled())
	assert.Equal(t, tel.Tracer.Provider(), tel.TracerProvider())
	assert.NotNil(t, tel.Meter.Meter("test"))
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "shelfsync"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestProfiler_StopIdempotent(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestWithProfilingLabels(t *testing.T) {
	var called int
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called++ })
	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelOperation: "inventory_sync",
		ProfilingLabelTenantID:  "",
	}, func(ctx context.Context) {
		called++
		assert.NotNil(t, ctx)
	})
	assert.Equal(t, 2, called)
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, trace.AlwaysSample().Description(), newSampler(1).Description())
	assert.Equal(t, trace.NeverSample().Description(), newSampler(0).Description())
	assert.Contains(t, newSampler(0.5).Description(), "TraceIDRatioBased")
}
