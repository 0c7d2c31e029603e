package models

import (
	"time"

	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogItemModel is the persistence model of a catalog item.
// BrandKey holds the case-folded brand tag so brand scoping is an index lookup.
type CatalogItemModel struct {
	TenantAggregateModel
	SKU               string          `gorm:"type:varchar(100);not null;index:idx_catalog_items_tenant_sku"`
	BrandTag          string          `gorm:"type:varchar(100);not null;default:''"`
	BrandKey          string          `gorm:"type:varchar(100);not null;default:'';index:idx_catalog_items_brand_key"`
	Title             string          `gorm:"type:varchar(255);not null"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InStock           bool            `gorm:"not null;default:false"`
	LastSyncedAt      *time.Time
	ExternalProductID string `gorm:"type:varchar(100);not null;default:''"`
}

// TableName returns the table name
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the model to a domain catalog item
func (m *CatalogItemModel) ToDomain() *catalog.CatalogItem {
	return &catalog.CatalogItem{
		TenantAggregateRoot: m.ToDomainTenant(),
		SKU:                 m.SKU,
		BrandTag:            m.BrandTag,
		Title:               m.Title,
		Price:               m.Price,
		InStock:             m.InStock,
		LastSyncedAt:        m.LastSyncedAt,
		ExternalProductID:   m.ExternalProductID,
	}
}

// CatalogItemModelFromDomain converts a domain catalog item to its model
func CatalogItemModelFromDomain(item *catalog.CatalogItem) *CatalogItemModel {
	m := &CatalogItemModel{
		SKU:               item.SKU,
		BrandTag:          item.BrandTag,
		BrandKey:          catalog.FoldBrandTag(item.BrandTag),
		Title:             item.Title,
		Price:             item.Price,
		InStock:           item.InStock,
		LastSyncedAt:      item.LastSyncedAt,
		ExternalProductID: item.ExternalProductID,
	}
	m.FromDomainTenant(item.TenantAggregateRoot)
	return m
}

// StoreModel is the persistence model of a store record
type StoreModel struct {
	TenantAggregateModel
	BrandName       string `gorm:"type:varchar(200);not null"`
	ExternalStoreID string `gorm:"type:varchar(100);not null;default:'';index"`
	LastSyncedAt    *time.Time
	LastSyncStatus  string `gorm:"type:varchar(20);not null;default:''"`
}

// TableName returns the table name
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the model to a domain store record
func (m *StoreModel) ToDomain() *catalog.StoreRecord {
	return &catalog.StoreRecord{
		TenantAggregateRoot: m.ToDomainTenant(),
		BrandName:           m.BrandName,
		ExternalStoreID:     m.ExternalStoreID,
		LastSyncedAt:        m.LastSyncedAt,
		LastSyncStatus:      catalog.SyncStatus(m.LastSyncStatus),
	}
}

// StoreModelFromDomain converts a domain store record to its model
func StoreModelFromDomain(s *catalog.StoreRecord) *StoreModel {
	m := &StoreModel{
		BrandName:       s.BrandName,
		ExternalStoreID: s.ExternalStoreID,
		LastSyncedAt:    s.LastSyncedAt,
		LastSyncStatus:  string(s.LastSyncStatus),
	}
	m.FromDomainTenant(s.TenantAggregateRoot)
	return m
}
