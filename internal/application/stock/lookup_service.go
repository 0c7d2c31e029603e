package stock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shelfsync/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// LookupConfig configures the consumer stock lookup
type LookupConfig struct {
	FallbackLatitude  float64
	FallbackLongitude float64
	Timeout           time.Duration
}

// DefaultLookupConfig returns the lookup defaults
func DefaultLookupConfig() LookupConfig {
	return LookupConfig{Timeout: 8 * time.Second}
}

type pendingLookup struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

// LookupService answers "which nearby stores have this product" queries.
// Lookups are keyed by product and location. Starting a lookup cancels any
// in-flight lookup for the same key, and only the latest lookup's result is
// ever returned. Nothing is cached or retried.
type LookupService struct {
	provider stock.InventoryProvider
	config   LookupConfig
	logger   *zap.Logger

	mu       sync.Mutex
	nextSeq  uint64
	inflight map[stock.QueryKey]*pendingLookup
}

// NewLookupService creates a new LookupService
func NewLookupService(provider stock.InventoryProvider, config LookupConfig, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{
		provider: provider,
		config:   config,
		logger:   logger,
		inflight: make(map[stock.QueryKey]*pendingLookup),
	}
}

// CheckAvailability returns the stores near the location that carry the product, nearest first.
// It fails with stock.ErrNetwork, stock.ErrService or stock.ErrTimeout, and with
// stock.ErrSuperseded when a newer lookup for the same key started meanwhile.
func (s *LookupService) CheckAvailability(
	ctx context.Context,
	catalogItemID, externalProductID string,
	latitude, longitude float64,
) ([]stock.AvailabilityResult, error) {
	query := stock.AvailabilityQuery{
		CatalogItemID:     catalogItemID,
		ExternalProductID: externalProductID,
		Latitude:          latitude,
		Longitude:         longitude,
	}
	if !query.HasLocation() {
		query.Latitude = s.config.FallbackLatitude
		query.Longitude = s.config.FallbackLongitude
	}
	key := query.Key()

	callCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	seq := s.begin(key, cancel)

	if s.config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		callCtx, cancelTimeout = context.WithTimeout(callCtx, s.config.Timeout)
		defer cancelTimeout()
	}

	results, err := s.provider.CheckNearbyAvailability(callCtx, query)

	if !s.finish(key, seq) {
		s.logger.Debug("discarding superseded stock lookup",
			zap.String("key", key.String()),
			zap.Uint64("seq", seq),
		)
		if cause := context.Cause(callCtx); cause != nil && !errors.Is(cause, stock.ErrSuperseded) {
			return nil, cause
		}
		return nil, stock.ErrSuperseded
	}

	if err != nil {
		return nil, s.classify(ctx, callCtx, err)
	}

	stock.SortNearestFirst(results)
	return results, nil
}

// Cancel aborts the in-flight lookup for a key, if any
func (s *LookupService) Cancel(key stock.QueryKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.inflight[key]
	if !ok {
		return false
	}
	p.cancel(context.Canceled)
	delete(s.inflight, key)
	return true
}

// InFlight returns the number of lookups currently waiting on the provider
func (s *LookupService) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

// begin registers a lookup as the latest for its key and cancels the one it replaces
func (s *LookupService) begin(key stock.QueryKey, cancel context.CancelCauseFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	if prev, ok := s.inflight[key]; ok {
		prev.cancel(stock.ErrSuperseded)
	}
	s.inflight[key] = &pendingLookup{seq: s.nextSeq, cancel: cancel}
	return s.nextSeq
}

// finish unregisters a lookup and reports whether it was still the latest for its key
func (s *LookupService) finish(key stock.QueryKey, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.inflight[key]
	if !ok || p.seq != seq {
		return false
	}
	delete(s.inflight, key)
	return true
}

func (s *LookupService) classify(parent, callCtx context.Context, err error) error {
	switch {
	case errors.Is(err, stock.ErrNetwork), errors.Is(err, stock.ErrService), errors.Is(err, stock.ErrTimeout):
		return err
	case parent.Err() != nil:
		return parent.Err()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", stock.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", stock.ErrService, err)
	}
}
