// Package provider implements the HTTP client of the external retail inventory service.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shelfsync/backend/internal/domain/stock"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxResponseSize limits the response body read from the service
const maxResponseSize = 5 * 1024 * 1024

// Client implements stock.InventoryProvider over HTTP JSON
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates an inventory service client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.timeout()},
		limiter:    rate.NewLimiter(limit, cfg.burst()),
		validate:   validator.New(),
		logger:     logger.Named("inventory-provider"),
		now:        time.Now,
	}, nil
}

// CheckNearbyAvailability asks for a product's stock at stores near a location
func (c *Client) CheckNearbyAvailability(ctx context.Context, query stock.AvailabilityQuery) ([]stock.AvailabilityResult, error) {
	var resp availabilityResponse
	err := c.post(ctx, "/availability", availabilityRequest{
		ProductID:         query.CatalogItemID,
		ExternalProductID: query.ExternalProductID,
		Latitude:          query.Latitude,
		Longitude:         query.Longitude,
	}, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]stock.AvailabilityResult, 0, len(resp.Stores))
	for _, s := range resp.Stores {
		results = append(results, stock.AvailabilityResult{
			StoreID:      s.StoreID,
			StoreName:    s.StoreName,
			StoreAddress: s.StoreAddress,
			DistanceKm:   s.Distance,
			InStock:      s.InStock,
			CheckedAt:    c.parseChecked(s.LastChecked),
		})
	}
	return results, nil
}

// CheckStoreStock asks for the stock of SKUs at one store
func (c *Client) CheckStoreStock(ctx context.Context, externalStoreID string, skus []string) ([]stock.StoreStockLevel, error) {
	var resp storeStockResponse
	if err := c.post(ctx, "/store-stock", storeStockRequest{ExternalStoreID: externalStoreID, SKUs: skus}, &resp); err != nil {
		return nil, err
	}

	levels := make([]stock.StoreStockLevel, len(resp.Inventory))
	for i, r := range resp.Inventory {
		levels[i] = stock.StoreStockLevel{SKU: r.SKU, InStock: r.InStock}
	}
	return levels, nil
}

// post sends one request and decodes the answer into out. It never retries.
func (c *Client) post(ctx context.Context, path string, body any, out envelope) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return c.contextError(ctx, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("provider: failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("provider: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("inventory request failed", zap.String("path", path), zap.Error(err))
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return c.transportError(ctx, err)
	}
	c.logger.Debug("inventory request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", stock.ErrService, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed body: %v", stock.ErrService, err)
	}
	if ok, msg := out.ok(); !ok {
		if msg == "" {
			msg = "request unsuccessful"
		}
		return fmt.Errorf("%w: %s", stock.ErrService, msg)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", stock.ErrService, err)
	}
	return nil
}

// contextError maps a limiter wait failure. Cancellation passes through so
// callers can tell it apart from a deadline.
func (c *Client) contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", stock.ErrTimeout, err)
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", stock.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", stock.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", stock.ErrNetwork, err)
}

func (c *Client) parseChecked(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return c.now()
}

var _ stock.InventoryProvider = (*Client)(nil)
