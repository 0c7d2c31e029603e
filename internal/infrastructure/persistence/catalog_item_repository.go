package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrBatchTooLarge is returned when a stock update batch exceeds the store's limit
var ErrBatchTooLarge = errors.New("persistence: stock update batch exceeds max batch size")

// GormCatalogItemRepository implements catalog.CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db           *gorm.DB
	maxBatchSize int
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository.
// maxBatchSize bounds the writes committed in one transaction.
func NewGormCatalogItemRepository(db *gorm.DB, maxBatchSize int) *GormCatalogItemRepository {
	if maxBatchSize <= 0 {
		maxBatchSize = 500
	}
	return &GormCatalogItemRepository{db: db, maxBatchSize: maxBatchSize}
}

// FindByIDForTenant finds a catalog item by ID within a tenant
func (r *GormCatalogItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all catalog items for a tenant
func (r *GormCatalogItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	query := r.db.WithContext(ctx).Model(&models.CatalogItemModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("sku LIKE ? OR title LIKE ?", like, like)
	}
	if brand, ok := filter.Filters["brand_tag"].(string); ok && brand != "" {
		query = query.Where("brand_key = ?", catalog.FoldBrandTag(brand))
	}
	if inStock, ok := filter.Filters["in_stock"].(bool); ok {
		query = query.Where("in_stock = ?", inStock)
	}

	var rows []models.CatalogItemModel
	if err := query.Scopes(paginate(filter, catalogItemSortFields, "created_at")).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCatalogItems(rows), nil
}

// FindByBrandScope finds the items matching the brand tag plus all untagged items, oldest first
func (r *GormCatalogItemRepository) FindByBrandScope(ctx context.Context, tenantID uuid.UUID, brandTag string) ([]catalog.CatalogItem, error) {
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("brand_key IN ?", []string{catalog.FoldBrandTag(brandTag), ""}).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCatalogItems(rows), nil
}

// Save creates or updates a catalog item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	return r.db.WithContext(ctx).Save(models.CatalogItemModelFromDomain(item)).Error
}

// ApplyStockUpdates writes stock and lastSyncedAt for every update in one transaction.
// A missing item rolls the whole batch back.
func (r *GormCatalogItemRepository) ApplyStockUpdates(ctx context.Context, tenantID uuid.UUID, updates []catalog.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if len(updates) > r.maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(updates), r.maxBatchSize)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&models.CatalogItemModel{}).
				Scopes(tenantScope(tenantID)).
				Where("id = ?", u.ItemID).
				Updates(map[string]any{
					"in_stock":       u.InStock,
					"last_synced_at": u.SyncedAt,
					"updated_at":     u.SyncedAt,
					"version":        gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("catalog item %s: %w", u.ItemID, shared.ErrNotFound)
			}
		}
		return nil
	})
}

// MaxBatchSize returns the largest batch ApplyStockUpdates accepts
func (r *GormCatalogItemRepository) MaxBatchSize() int {
	return r.maxBatchSize
}

func toCatalogItems(rows []models.CatalogItemModel) []catalog.CatalogItem {
	items := make([]catalog.CatalogItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

var _ catalog.CatalogItemRepository = (*GormCatalogItemRepository)(nil)
