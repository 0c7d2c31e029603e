package telemetry

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DBPoolMetrics periodically records connection pool statistics.
type DBPoolMetrics struct {
	poolConnections    *Gauge // db_pool_connections{db.pool.state}
	poolConnectionsMax *Gauge // db_pool_connections_max

	sqlDB    *sql.DB
	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDBPoolMetrics creates pool gauges for sqlDB. Interval defaults to 15s.
func NewDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB, interval time.Duration, logger *zap.Logger) (*DBPoolMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}

	poolConnections, err := NewGauge(meter, "db_pool_connections", "Number of connections in the pool by state", "{connection}")
	if err != nil {
		return nil, err
	}
	poolConnectionsMax, err := NewGauge(meter, "db_pool_connections_max", "Maximum number of connections in the pool", "{connection}")
	if err != nil {
		return nil, err
	}

	return &DBPoolMetrics{
		poolConnections:    poolConnections,
		poolConnectionsMax: poolConnectionsMax,
		sqlDB:              sqlDB,
		interval:           interval,
		logger:             logger,
		stopCh:             make(chan struct{}),
	}, nil
}

// Start collects pool stats until ctx is done or Stop is called.
func (m *DBPoolMetrics) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.Collect(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.Collect(ctx)
			}
		}
	}()
}

// Collect records the current pool stats once.
func (m *DBPoolMetrics) Collect(ctx context.Context) {
	stats := m.sqlDB.Stats()
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
}

// Stop ends collection and waits for the loop to exit.
func (m *DBPoolMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
	m.wg.Wait()
}
