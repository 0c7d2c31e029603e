package inventory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/inventory"
)

// ReportHistory keeps the most recent sync reports of each store in memory
type ReportHistory struct {
	mu       sync.RWMutex
	perStore int
	reports  map[uuid.UUID][]inventory.SyncReport
}

// NewReportHistory creates a history keeping perStore reports per store
func NewReportHistory(perStore int) *ReportHistory {
	if perStore <= 0 {
		perStore = 20
	}
	return &ReportHistory{
		perStore: perStore,
		reports:  make(map[uuid.UUID][]inventory.SyncReport),
	}
}

// Add records a report, evicting the oldest one beyond the limit
func (h *ReportHistory) Add(report *inventory.SyncReport) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := append(h.reports[report.StoreID], *report)
	if len(list) > h.perStore {
		list = list[len(list)-h.perStore:]
	}
	h.reports[report.StoreID] = list
}

// List returns a store's reports, newest first
func (h *ReportHistory) List(tenantID, storeID uuid.UUID, limit int) []inventory.SyncReport {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list := h.reports[storeID]
	out := make([]inventory.SyncReport, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].TenantID != tenantID {
			continue
		}
		out = append(out, list[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
