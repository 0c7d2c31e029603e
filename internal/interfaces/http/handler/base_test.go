package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	accountapp "github.com/shelfsync/backend/internal/application/account"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
	"github.com/shelfsync/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.ErrConcurrencyConflict), http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"invalid field", shared.NewDomainError("INVALID_LAST4", "Last4 must be 4 digits"), http.StatusBadRequest, "ERR_INVALID_LAST4"},
		{"owner mismatch", sibling.ErrOwnerMismatch, http.StatusForbidden, dto.ErrCodeOwnerMismatch},
		{"multiple defaults", sibling.ErrMultipleDefaults, http.StatusConflict, dto.ErrCodeMultipleDefaults},
		{"missing brand tag", inventory.ErrMissingBrandTag, http.StatusUnprocessableEntity, dto.ErrCodeMissingBrandTag},
		{"scheduler stopped", scheduler.ErrSchedulerNotRunning, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable},
		{"no change feed", accountapp.ErrSubscriptionsUnavailable, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newTestEngine()
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doJSON(t, r, http.MethodGet, "/", nil, nil)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w, nil)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleErrorClientGone(t *testing.T) {
	h := &BaseHandler{}
	r := newTestEngine()
	r.GET("/", func(c *gin.Context) { h.HandleError(c, context.Canceled) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, StatusClientClosedRequest, w.Code)
}

func TestBaseHandler_BindJSONMalformed(t *testing.T) {
	h := &BaseHandler{}
	r := newTestEngine()
	r.POST("/", func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if h.BindJSON(c, &body) {
			h.Success(c, body)
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w, nil)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestSystemHandler(t *testing.T) {
	h := NewSystemHandler("shelfsync", "1.2.3").
		AddCheck("database", func(context.Context) error { return nil })
	r := newTestEngine()
	r.GET("/health", h.Health)
	r.GET("/info", h.GetSystemInfo)

	t.Run("health", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got HealthResponse
		decode(t, w, &got)
		assert.Equal(t, "ok", got.Status)
		assert.Equal(t, "ok", got.Checks["database"])
	})

	t.Run("info", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/info", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got SystemInfoResponse
		decode(t, w, &got)
		assert.Equal(t, "shelfsync", got.Name)
		assert.Equal(t, "1.2.3", got.Version)
		assert.NotEmpty(t, got.GoVersion)
	})

	t.Run("degraded", func(t *testing.T) {
		h.AddCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") })
		w := doJSON(t, r, http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var got HealthResponse
		decode(t, w, &got)
		assert.Equal(t, "degraded", got.Status)
		assert.Equal(t, "dial tcp: refused", got.Checks["redis"])
	})
}
