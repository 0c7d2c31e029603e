package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shelfsync/backend/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), ErrMissingBaseURL)
	assert.ErrorIs(t, (&Config{BaseURL: "ftp://x"}).Validate(), ErrInvalidBaseURL)
	assert.ErrorIs(t, (&Config{BaseURL: "inventory.local"}).Validate(), ErrInvalidBaseURL)
	assert.NoError(t, (&Config{BaseURL: "https://inventory.example.com/v1"}).Validate())
}

func TestClient_CheckStoreStock(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store-stock", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var req storeStockRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1234", req.ExternalStoreID)
		assert.Equal(t, []string{"A", "B"}, req.SKUs)

		_, _ = w.Write([]byte(`{"success":true,"inventory":[{"sku":"A","inStock":true},{"sku":"B","inStock":false}]}`))
	})

	levels, err := c.CheckStoreStock(context.Background(), "1234", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []stock.StoreStockLevel{{SKU: "A", InStock: true}, {SKU: "B", InStock: false}}, levels)
}

func TestClient_CheckNearbyAvailability(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability", r.URL.Path)
		var req availabilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "item-1", req.ProductID)
		assert.Equal(t, "ext-9", req.ExternalProductID)
		assert.InDelta(t, 40.4168, req.Latitude, 1e-9)

		_, _ = w.Write([]byte(`{"success":true,"cached":false,"stores":[
			{"storeId":"s1","storeName":"Gran Via","storeAddress":"Gran Via 32","inStock":true,"distance":1.2,"lastChecked":"2026-03-01T10:00:00Z"},
			{"storeId":"s2","storeName":"Sol","inStock":false}
		]}`))
	})

	results, err := c.CheckNearbyAvailability(context.Background(), stock.AvailabilityQuery{
		CatalogItemID: "item-1", ExternalProductID: "ext-9", Latitude: 40.4168, Longitude: -3.7038,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 1.2, *results[0].DistanceKm, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), results[0].CheckedAt.UTC())
	assert.Nil(t, results[1].DistanceKm)
	assert.False(t, results[1].CheckedAt.IsZero())
}

func TestClient_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusBadGateway, `{"success":true}`},
		{"malformed body", http.StatusOK, `{"success":tru`},
		{"unsuccessful", http.StatusOK, `{"success":false,"error":"store not found"}`},
		{"missing sku", http.StatusOK, `{"success":true,"inventory":[{"inStock":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.CheckStoreStock(context.Background(), "1234", []string{"A"})
			assert.ErrorIs(t, err, stock.ErrService)
		})
	}

	t.Run("error message is kept", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"store not found"}`))
		})
		_, err := c.CheckStoreStock(context.Background(), "1234", []string{"A"})
		assert.Contains(t, err.Error(), "store not found")
	})
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url, Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.CheckStoreStock(context.Background(), "1234", []string{"A"})
	assert.ErrorIs(t, err, stock.ErrNetwork)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, func(cfg *Config) { cfg.Timeout = 50 * time.Millisecond })
	defer close(release)

	_, err := c.CheckStoreStock(context.Background(), "1234", []string{"A"})
	assert.ErrorIs(t, err, stock.ErrTimeout)
}

func TestClient_CancelPassesThrough(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	// runs before the server's Close registered by newTestClient
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := c.CheckNearbyAvailability(ctx, stock.AvailabilityQuery{CatalogItemID: "x"})
	assert.True(t, errors.Is(err, context.Canceled), err)
}

func TestClient_RateLimitHonorsDeadline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"inventory":[]}`))
	}, func(cfg *Config) { cfg.RateLimit = 0.5; cfg.Burst = 1 })

	_, err := c.CheckStoreStock(context.Background(), "1234", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = c.CheckStoreStock(ctx, "1234", nil)
	assert.ErrorIs(t, err, stock.ErrTimeout)
}
