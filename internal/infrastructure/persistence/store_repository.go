package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStoreRepository implements catalog.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByIDForTenant finds a store by ID within a tenant
func (r *GormStoreRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.StoreRecord, error) {
	var model models.StoreModel
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

// FindAllForTenant finds all stores for a tenant
func (r *GormStoreRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.StoreRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		query = query.Where("brand_name LIKE ?", "%"+filter.Search+"%")
	}

	var rows []models.StoreModel
	if err := query.Scopes(paginate(filter, storeSortFields, "created_at")).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStores(rows), nil
}

// FindLinked finds stores of all tenants that have an external store id
func (r *GormStoreRepository) FindLinked(ctx context.Context) ([]catalog.StoreRecord, error) {
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("external_store_id <> ''").
		Order("tenant_id ASC").Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStores(rows), nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *catalog.StoreRecord) error {
	return r.db.WithContext(ctx).Save(models.StoreModelFromDomain(store)).Error
}

// UpdateSyncStatus records the outcome of a reconciliation sweep
func (r *GormStoreRepository) UpdateSyncStatus(ctx context.Context, tenantID, id uuid.UUID, status catalog.SyncStatus, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Scopes(tenantScope(tenantID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_synced_at":   at,
			"last_sync_status": string(status),
			"updated_at":       at,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toStores(rows []models.StoreModel) []catalog.StoreRecord {
	stores := make([]catalog.StoreRecord, len(rows))
	for i := range rows {
		stores[i] = *rows[i].ToDomain()
	}
	return stores
}

var _ catalog.StoreRepository = (*GormStoreRepository)(nil)
