package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// DefaultBatchSize is the default number of stock writes committed per chunk
const DefaultBatchSize = 450

// DefaultLeaseTTL bounds how long a crashed sweep can block its store
const DefaultLeaseTTL = 5 * time.Minute

// ReconcilerConfig configures reconciliation sweeps
type ReconcilerConfig struct {
	BatchSize   int
	LeaseTTL    time.Duration
	HistorySize int
}

// DefaultReconcilerConfig returns the reconciliation defaults
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		BatchSize:   DefaultBatchSize,
		LeaseTTL:    DefaultLeaseTTL,
		HistorySize: 20,
	}
}

// SyncRecorder records sweep outcomes, e.g. as metrics
type SyncRecorder interface {
	RecordSync(ctx context.Context, report *inventory.SyncReport)
}

type noopRecorder struct{}

func (noopRecorder) RecordSync(context.Context, *inventory.SyncReport) {}

// Reconciler pulls the external inventory of a store's SKU universe and writes
// the stock flags back to the catalog in sequential chunks.
type Reconciler struct {
	stores   catalog.StoreRepository
	items    catalog.CatalogItemRepository
	provider stock.InventoryProvider
	leases   inventory.LeaseManager
	events   shared.EventPublisher
	recorder SyncRecorder
	history  *ReportHistory
	config   ReconcilerConfig
	logger   *zap.Logger
	now      func() time.Time
}

// ReconcilerOption configures optional collaborators of a Reconciler
type ReconcilerOption func(*Reconciler)

// WithEventPublisher publishes stock-change events after each sweep
func WithEventPublisher(p shared.EventPublisher) ReconcilerOption {
	return func(r *Reconciler) { r.events = p }
}

// WithSyncRecorder records every sweep outcome
func WithSyncRecorder(rec SyncRecorder) ReconcilerOption {
	return func(r *Reconciler) { r.recorder = rec }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) { r.now = now }
}

// NewReconciler creates a new Reconciler
func NewReconciler(
	stores catalog.StoreRepository,
	items catalog.CatalogItemRepository,
	provider stock.InventoryProvider,
	leases inventory.LeaseManager,
	config ReconcilerConfig,
	logger *zap.Logger,
	opts ...ReconcilerOption,
) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.LeaseTTL <= 0 {
		config.LeaseTTL = DefaultLeaseTTL
	}
	r := &Reconciler{
		stores:   stores,
		items:    items,
		provider: provider,
		leases:   leases,
		events:   shared.NoopEventPublisher{},
		recorder: noopRecorder{},
		history:  NewReportHistory(config.HistorySize),
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ChunkSize returns the effective chunk size: the configured size capped by the repository limit
func (r *Reconciler) ChunkSize() int {
	size := r.config.BatchSize
	limit := r.items.MaxBatchSize()
	if size <= 0 || (limit > 0 && size > limit) {
		size = limit
	}
	if size <= 0 {
		size = DefaultBatchSize
	}
	return size
}

// History returns the most recent reports of a store, newest first
func (r *Reconciler) History(tenantID, storeID uuid.UUID, limit int) []inventory.SyncReport {
	return r.history.List(tenantID, storeID, limit)
}

// Sync runs one reconciliation sweep for a store.
//
// It fails before any provider call with inventory.ErrMissingExternalID or
// inventory.ErrMissingBrandTag, and with inventory.ErrSyncInProgress when another
// sweep holds the store's lease. A provider failure returns the failed report
// together with the error. Chunk commit failures never fail the call: they are
// reported per chunk and per SKU, and the report status becomes PARTIAL or FAILED.
func (r *Reconciler) Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error) {
	store, err := r.stores.FindByIDForTenant(ctx, tenantID, storeID)
	if err != nil {
		return nil, err
	}
	if !store.HasExternalStoreID() {
		return nil, inventory.ErrMissingExternalID
	}
	brandTag := store.BrandTag()
	if brandTag == "" {
		return nil, inventory.ErrMissingBrandTag
	}

	lease, err := r.leases.TryAcquire(ctx, inventory.SyncLeaseKey(tenantID, storeID), r.config.LeaseTTL)
	if err != nil {
		if errors.Is(err, inventory.ErrLeaseHeld) {
			return nil, inventory.ErrSyncInProgress
		}
		return nil, fmt.Errorf("acquire sync lease: %w", err)
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			r.logger.Warn("failed to release sync lease",
				zap.String("store_id", storeID.String()),
				zap.Error(err),
			)
		}
	}()

	report := inventory.NewSyncReport(tenantID, storeID, r.now())
	report.ExternalStoreID = store.ExternalStoreID
	report.BrandTag = brandTag

	changed, err := r.sweep(ctx, store, report)
	r.finish(ctx, report, changed)
	return report, err
}

// sweep resolves the SKU universe, queries the provider and commits the writes.
// It returns the items whose stock flag flipped in committed chunks.
func (r *Reconciler) sweep(ctx context.Context, store *catalog.StoreRecord, report *inventory.SyncReport) ([]*catalog.CatalogItem, error) {
	log := r.logger.With(
		zap.String("tenant_id", store.TenantID.String()),
		zap.String("store_id", store.ID.String()),
		zap.String("external_store_id", store.ExternalStoreID),
	)

	scope, err := r.items.FindByBrandScope(ctx, store.TenantID, report.BrandTag)
	if err != nil {
		report.Fail(err, r.now())
		return nil, fmt.Errorf("load catalog scope: %w", err)
	}

	bySKU := make(map[string]*catalog.CatalogItem, len(scope))
	skus := make([]string, 0, len(scope))
	for i := range scope {
		item := &scope[i]
		if !catalog.MatchesBrand(item.BrandTag, report.BrandTag) {
			continue
		}
		// repeated SKUs are sent as-is; the first item wins the match
		if _, seen := bySKU[item.SKU]; !seen {
			bySKU[item.SKU] = item
		}
		skus = append(skus, item.SKU)
	}
	report.RequestedCount = len(skus)

	if len(skus) == 0 {
		log.Info("no catalog items in sync scope", zap.String("brand_tag", report.BrandTag))
		report.Complete(r.now())
		return nil, nil
	}

	levels, err := r.provider.CheckStoreStock(ctx, store.ExternalStoreID, skus)
	if err != nil {
		log.Warn("store stock check failed", zap.Error(err))
		report.Fail(err, r.now())
		return nil, err
	}
	report.ReturnedCount = len(levels)

	type match struct {
		item  *catalog.CatalogItem
		level stock.StoreStockLevel
	}
	matches := make([]match, 0, len(levels))
	for _, level := range levels {
		item, ok := bySKU[level.SKU]
		if !ok {
			report.AddUnmatched(level.SKU, level.InStock)
			continue
		}
		matches = append(matches, match{item: item, level: level})
	}

	syncedAt := r.now()
	chunkSize := r.ChunkSize()
	var changed []*catalog.CatalogItem

	for start, chunk := 0, 0; start < len(matches); start, chunk = start+chunkSize, chunk+1 {
		end := min(start+chunkSize, len(matches))
		part := matches[start:end]
		report.ChunkCount++

		commitErr := ctx.Err()
		if commitErr == nil {
			updates := make([]catalog.StockUpdate, len(part))
			for i, m := range part {
				updates[i] = catalog.StockUpdate{ItemID: m.item.ID, InStock: m.level.InStock, SyncedAt: syncedAt}
			}
			commitErr = r.items.ApplyStockUpdates(ctx, store.TenantID, updates)
		}

		if commitErr != nil {
			log.Warn("stock chunk commit failed",
				zap.Int("chunk", chunk),
				zap.Int("size", len(part)),
				zap.Error(commitErr),
			)
			report.ChunkFailures = append(report.ChunkFailures, inventory.ChunkFailure{
				Chunk: chunk,
				Size:  len(part),
				Error: commitErr.Error(),
			})
			for _, m := range part {
				id := m.item.ID
				report.Results = append(report.Results, inventory.SkuResult{
					SKU:           m.level.SKU,
					CatalogItemID: &id,
					InStock:       m.level.InStock,
					Outcome:       inventory.SkuOutcomeFailed,
					Chunk:         chunk,
					Error:         commitErr.Error(),
				})
			}
			continue
		}

		report.UpdatedCount += len(part)
		for _, m := range part {
			id := m.item.ID
			report.Results = append(report.Results, inventory.SkuResult{
				SKU:           m.level.SKU,
				CatalogItemID: &id,
				InStock:       m.level.InStock,
				Outcome:       inventory.SkuOutcomeUpdated,
				Chunk:         chunk,
			})
			if m.item.ApplyStockSync(m.level.InStock, syncedAt) {
				changed = append(changed, m.item)
			}
		}
	}

	report.Complete(r.now())
	log.Info("store stock sync completed",
		zap.String("status", string(report.Status)),
		zap.Int("requested", report.RequestedCount),
		zap.Int("updated", report.UpdatedCount),
		zap.Int("unmatched", report.UnmatchedCount()),
		zap.Int("failed_chunks", len(report.ChunkFailures)),
	)
	return changed, nil
}

// finish does the best-effort bookkeeping after a sweep
func (r *Reconciler) finish(ctx context.Context, report *inventory.SyncReport, changed []*catalog.CatalogItem) {
	ctx = context.WithoutCancel(ctx)

	if err := r.stores.UpdateSyncStatus(ctx, report.TenantID, report.StoreID, report.Status.ToStoreStatus(), report.CompletedAt); err != nil {
		r.logger.Warn("failed to record store sync status",
			zap.String("store_id", report.StoreID.String()),
			zap.Error(err),
		)
	}

	if len(changed) > 0 {
		events := make([]shared.DomainEvent, 0, len(changed))
		for _, item := range changed {
			events = append(events, item.GetDomainEvents()...)
			item.ClearDomainEvents()
		}
		if err := r.events.Publish(ctx, events...); err != nil {
			r.logger.Warn("failed to publish stock change events",
				zap.Int("count", len(events)),
				zap.Error(err),
			)
		}
	}

	r.recorder.RecordSync(ctx, report)
	r.history.Add(report)
}
