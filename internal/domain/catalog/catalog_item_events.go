package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCatalogItem = "CatalogItem"

// Event type constants
const (
	EventTypeStockChanged = "CatalogItemStockChanged"
)

// StockChangedEvent is published when reconciliation flips an item's stock flag
type StockChangedEvent struct {
	shared.BaseDomainEvent
	CatalogItemID   uuid.UUID `json:"catalog_item_id"`
	SKU             string    `json:"sku"`
	BrandTag        string    `json:"brand_tag,omitempty"`
	InStock         bool      `json:"in_stock"`
	PreviousInStock bool      `json:"previous_in_stock"`
	SyncedAt        time.Time `json:"synced_at"`
}

// NewStockChangedEvent creates a new StockChangedEvent
func NewStockChangedEvent(item *CatalogItem, previous bool) *StockChangedEvent {
	var syncedAt time.Time
	if item.LastSyncedAt != nil {
		syncedAt = *item.LastSyncedAt
	}
	return &StockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockChanged, AggregateTypeCatalogItem, item.ID, item.TenantID),
		CatalogItemID:   item.ID,
		SKU:             item.SKU,
		BrandTag:        item.BrandTag,
		InStock:         item.InStock,
		PreviousInStock: previous,
		SyncedAt:        syncedAt,
	}
}
