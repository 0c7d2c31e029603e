package telemetry

import (
	"context"
	"errors"

	"github.com/shelfsync/backend/internal/domain/inventory"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// InventoryMetrics records the outcome of reconciliation sweeps.
type InventoryMetrics struct {
	syncTotal       *Counter   // inventory_sync_total{sync_status}
	skusRequested   *Counter   // inventory_sync_skus_requested_total
	skusUpdated     *Counter   // inventory_sync_skus_updated_total
	skusUnmatched   *Counter   // inventory_sync_skus_unmatched_total
	chunkFailures   *Counter   // inventory_sync_chunk_failures_total
	syncDuration    *Histogram // inventory_sync_duration_seconds
	lastSyncUpdated *Gauge     // inventory_sync_last_updated{store_id}
}

// NewInventoryMetrics creates the sweep metrics on the given meter.
func NewInventoryMetrics(meter metric.Meter) (*InventoryMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &InventoryMetrics{}
	var err error
	if m.syncTotal, err = NewCounter(meter, "inventory_sync_total", "Reconciliation sweeps by outcome", "{sweep}"); err != nil {
		return nil, err
	}
	if m.skusRequested, err = NewCounter(meter, "inventory_sync_skus_requested_total", "SKUs sent to the inventory provider", "{sku}"); err != nil {
		return nil, err
	}
	if m.skusUpdated, err = NewCounter(meter, "inventory_sync_skus_updated_total", "Catalog items written by reconciliation", "{sku}"); err != nil {
		return nil, err
	}
	if m.skusUnmatched, err = NewCounter(meter, "inventory_sync_skus_unmatched_total", "Provider SKUs with no catalog item", "{sku}"); err != nil {
		return nil, err
	}
	if m.chunkFailures, err = NewCounter(meter, "inventory_sync_chunk_failures_total", "Reconciliation chunks that failed to commit", "{chunk}"); err != nil {
		return nil, err
	}
	if m.syncDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "inventory_sync_duration_seconds",
		Description: "Reconciliation sweep duration",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.lastSyncUpdated, err = NewGauge(meter, "inventory_sync_last_updated", "Items written by the latest sweep of a store", "{sku}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordSync records one finished sweep.
func (m *InventoryMetrics) RecordSync(ctx context.Context, report *inventory.SyncReport) {
	status := AttrSyncStatus.String(string(report.Status))
	tenant := AttrTenantID.String(report.TenantID.String())

	m.syncTotal.Inc(ctx, status, tenant)
	m.skusRequested.Add(ctx, int64(report.RequestedCount), tenant)
	m.skusUpdated.Add(ctx, int64(report.UpdatedCount), tenant)
	m.skusUnmatched.Add(ctx, int64(report.UnmatchedCount()), tenant)
	if n := len(report.ChunkFailures); n > 0 {
		m.chunkFailures.Add(ctx, int64(n), tenant)
	}
	if !report.CompletedAt.IsZero() {
		m.syncDuration.RecordDuration(ctx, report.CompletedAt.Sub(report.StartedAt), status)
	}
	m.lastSyncUpdated.Record(ctx, int64(report.UpdatedCount), AttrStoreID.String(report.StoreID.String()))
}
