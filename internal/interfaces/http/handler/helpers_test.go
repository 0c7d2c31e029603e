package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/stock"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
	"github.com/shelfsync/backend/internal/interfaces/http/dto"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestEngine returns an engine with request ids and identity headers parsed
func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and its data into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return dto.Response{Success: raw.Success, Error: raw.Error}
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockChecker struct{ mock.Mock }

func (m *mockChecker) CheckAvailability(ctx context.Context, catalogItemID, externalProductID string, lat, lng float64) ([]stock.AvailabilityResult, error) {
	args := m.Called(ctx, catalogItemID, externalProductID, lat, lng)
	results, _ := args.Get(0).([]stock.AvailabilityResult)
	return results, args.Error(1)
}

type mockStoreReader struct{ mock.Mock }

func (m *mockStoreReader) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.StoreRecord, error) {
	args := m.Called(ctx, tenantID, id)
	store, _ := args.Get(0).(*catalog.StoreRecord)
	return store, args.Error(1)
}

func (m *mockStoreReader) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.StoreRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	stores, _ := args.Get(0).([]catalog.StoreRecord)
	return stores, args.Error(1)
}

type mockReconciler struct{ mock.Mock }

func (m *mockReconciler) Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error) {
	args := m.Called(ctx, tenantID, storeID)
	report, _ := args.Get(0).(*inventory.SyncReport)
	return report, args.Error(1)
}

func (m *mockReconciler) History(tenantID, storeID uuid.UUID, limit int) []inventory.SyncReport {
	args := m.Called(tenantID, storeID, limit)
	reports, _ := args.Get(0).([]inventory.SyncReport)
	return reports
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) ScheduleSync(tenantID, storeID uuid.UUID) (scheduler.SyncJob, error) {
	args := m.Called(tenantID, storeID)
	job, _ := args.Get(0).(scheduler.SyncJob)
	return job, args.Error(1)
}

func (m *mockQueue) GetJobHistoryByStore(tenantID, storeID uuid.UUID, limit int) []*scheduler.SyncJob {
	args := m.Called(tenantID, storeID, limit)
	jobs, _ := args.Get(0).([]*scheduler.SyncJob)
	return jobs
}
