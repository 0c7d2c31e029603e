package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// StockUpdate is a single reconciliation write: stock and lastSyncedAt set together
type StockUpdate struct {
	ItemID   uuid.UUID
	InStock  bool
	SyncedAt time.Time
}

// CatalogItemRepository defines the interface for catalog item persistence
type CatalogItemRepository interface {
	// FindByIDForTenant finds a catalog item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CatalogItem, error)

	// FindAllForTenant finds all catalog items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CatalogItem, error)

	// FindByBrandScope finds the items a store tagged brandTag may reconcile:
	// items with a case-insensitively equal brand tag plus all untagged items.
	// Results are ordered by creation time so duplicate SKUs resolve deterministically.
	FindByBrandScope(ctx context.Context, tenantID uuid.UUID, brandTag string) ([]CatalogItem, error)

	// Save creates or updates a catalog item
	Save(ctx context.Context, item *CatalogItem) error

	// ApplyStockUpdates commits all updates as one atomic batch.
	// The batch must not exceed MaxBatchSize.
	ApplyStockUpdates(ctx context.Context, tenantID uuid.UUID, updates []StockUpdate) error

	// MaxBatchSize returns the largest batch ApplyStockUpdates accepts
	MaxBatchSize() int
}

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	// FindByIDForTenant finds a store by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StoreRecord, error)

	// FindAllForTenant finds all stores for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StoreRecord, error)

	// FindLinked finds stores of all tenants that have an external store id
	FindLinked(ctx context.Context) ([]StoreRecord, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *StoreRecord) error

	// UpdateSyncStatus records the outcome of a reconciliation sweep
	UpdateSyncStatus(ctx context.Context, tenantID, id uuid.UUID, status SyncStatus, at time.Time) error
}
