package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// StoreReader lists a tenant's stores
type StoreReader interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.StoreRecord, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.StoreRecord, error)
}

// StoreReconciler runs reconciliation sweeps and keeps their reports
type StoreReconciler interface {
	Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error)
	History(tenantID, storeID uuid.UUID, limit int) []inventory.SyncReport
}

// SyncQueue queues background sweeps
type SyncQueue interface {
	ScheduleSync(tenantID, storeID uuid.UUID) (scheduler.SyncJob, error)
	GetJobHistoryByStore(tenantID, storeID uuid.UUID, limit int) []*scheduler.SyncJob
}

// StoreHandler handles the admin store endpoints: listing, sync trigger and sync history
type StoreHandler struct {
	BaseHandler
	stores     StoreReader
	reconciler StoreReconciler
	queue      SyncQueue
}

// NewStoreHandler creates a new StoreHandler. queue may be nil when background sweeps are disabled.
func NewStoreHandler(stores StoreReader, reconciler StoreReconciler, queue SyncQueue) *StoreHandler {
	return &StoreHandler{
		stores:     stores,
		reconciler: reconciler,
		queue:      queue,
	}
}

// List returns the tenant's stores with their last sync outcome.
// GET /stores?search=&page=&page_size=
//
// @ID           listStores
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Name filter"
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]StoreResponse}
// @Failure      401 {object} dto.Response
// @Router       /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	filter := shared.DefaultFilter()
	filter.Search = c.Query("search")
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		filter.PageSize = v
	}

	stores, err := h.stores.FindAllForTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]StoreResponse, len(stores))
	for i := range stores {
		out[i] = toStoreResponse(&stores[i])
	}
	h.Success(c, out)
}

// GetByID returns one store.
// GET /stores/:id
//
// @ID           getStore
// @Summary      Get a store
// @Tags         stores
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=StoreResponse}
// @Failure      404 {object} dto.Response
// @Router       /stores/{id} [get]
func (h *StoreHandler) GetByID(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	storeID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.FindByIDForTenant(c.Request.Context(), tenantID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStoreResponse(store))
}

// Sync reconciles a store's catalog stock with the provider.
// POST /stores/:id/sync runs the sweep and returns its report, PARTIAL and FAILED
// sweeps included. With ?async=true the sweep is queued and 202 returns the job.
//
// @ID           syncStore
// @Summary      Reconcile store stock
// @Tags         stores
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Store ID" format(uuid)
// @Param        async query bool false "Queue the sweep instead of running it"
// @Success      200 {object} dto.Response{data=SyncReportResponse}
// @Success      202 {object} dto.Response{data=SyncJobResponse}
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /stores/{id}/sync [post]
func (h *StoreHandler) Sync(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	storeID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if async, _ := strconv.ParseBool(c.Query("async")); async {
		if h.queue == nil {
			h.HandleError(c, scheduler.ErrSchedulerNotRunning)
			return
		}
		// Preconditions are checked by the sweep itself; only existence is checked here
		if _, err := h.stores.FindByIDForTenant(c.Request.Context(), tenantID, storeID); err != nil {
			h.HandleError(c, err)
			return
		}
		job, err := h.queue.ScheduleSync(tenantID, storeID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Accepted(c, toSyncJobResponse(&job))
		return
	}

	report, err := h.reconciler.Sync(c.Request.Context(), tenantID, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSyncReportResponse(report, true))
}

// SyncJobs returns the recent sweep reports and scheduler jobs of a store, newest first.
// GET /stores/:id/sync-jobs?limit=
//
// @ID           listStoreSyncJobs
// @Summary      Recent sync reports and jobs
// @Tags         stores
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Store ID" format(uuid)
// @Param        limit query int false "At most 100"
// @Success      200 {object} dto.Response{data=SyncHistoryResponse}
// @Router       /stores/{id}/sync-jobs [get]
func (h *StoreHandler) SyncJobs(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	storeID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(v, maxHistoryLimit)
	}

	resp := SyncHistoryResponse{
		Reports: make([]SyncReportResponse, 0),
		Jobs:    make([]SyncJobResponse, 0),
	}
	reports := h.reconciler.History(tenantID, storeID, limit)
	for i := range reports {
		resp.Reports = append(resp.Reports, toSyncReportResponse(&reports[i], false))
	}
	if h.queue != nil {
		for _, job := range h.queue.GetJobHistoryByStore(tenantID, storeID, limit) {
			resp.Jobs = append(resp.Jobs, toSyncJobResponse(job))
		}
	}
	h.Success(c, resp)
}
