package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CatalogItem represents a SKU in the shared catalog.
// Its stock flag mirrors the external inventory and is only changed by reconciliation.
type CatalogItem struct {
	shared.TenantAggregateRoot
	SKU               string
	BrandTag          string
	Title             string
	Price             decimal.Decimal
	InStock           bool
	LastSyncedAt      *time.Time
	ExternalProductID string
}

// NewCatalogItem creates a new catalog item
func NewCatalogItem(tenantID uuid.UUID, sku, brandTag, title string, price decimal.Decimal) (*CatalogItem, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &CatalogItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		BrandTag:            strings.TrimSpace(brandTag),
		Title:               title,
		Price:               price,
	}, nil
}

// HasBrandTag returns true if the item is scoped to a single brand
func (c *CatalogItem) HasBrandTag() bool {
	return FoldBrandTag(c.BrandTag) != ""
}

// SetExternalProductID links the item to the provider's product identifier
func (c *CatalogItem) SetExternalProductID(externalID string) {
	c.ExternalProductID = strings.TrimSpace(externalID)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ApplyStockSync records the stock state reported by the provider.
// Stock and lastSyncedAt always move together. Returns true if the flag flipped.
func (c *CatalogItem) ApplyStockSync(inStock bool, syncedAt time.Time) bool {
	previous := c.InStock
	c.InStock = inStock
	c.LastSyncedAt = &syncedAt
	c.UpdatedAt = syncedAt
	c.IncrementVersion()

	if previous == inStock {
		return false
	}
	c.AddDomainEvent(NewStockChangedEvent(c, previous))
	return true
}
