package persistence

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// tenantScope restricts a query to one tenant
func tenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// paginate applies ordering and paging from a filter. The sort field must be
// whitelisted; anything else falls back to defaultField.
func paginate(filter shared.Filter, allowed map[string]bool, defaultField string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(filter.OrderBy)
		if !allowed[field] {
			field = defaultField
		}
		dir := "ASC"
		if strings.EqualFold(strings.TrimSpace(filter.OrderDir), "desc") {
			dir = "DESC"
		}
		db = db.Order(field + " " + dir).Order("id ASC")

		if filter.PageSize > 0 {
			page := filter.Page
			if page < 1 {
				page = 1
			}
			db = db.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
		}
		return db
	}
}

var catalogItemSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"sku":            true,
	"title":          true,
	"last_synced_at": true,
}

var storeSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"brand_name":     true,
	"last_synced_at": true,
}
