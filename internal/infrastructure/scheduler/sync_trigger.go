package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shelfsync/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// LinkedStoreSource lists the stores eligible for scheduled sweeps
type LinkedStoreSource interface {
	FindLinked(ctx context.Context) ([]catalog.StoreRecord, error)
}

// SyncTrigger periodically queues a sweep for every linked store
type SyncTrigger struct {
	interval  time.Duration
	stores    LinkedStoreSource
	scheduler *InventorySyncScheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncTrigger creates a new sync trigger
func NewSyncTrigger(interval time.Duration, stores LinkedStoreSource, scheduler *InventorySyncScheduler, logger *zap.Logger) (*SyncTrigger, error) {
	if interval <= 0 {
		return nil, ErrInvalidConfig
	}
	return &SyncTrigger{
		interval:  interval,
		stores:    stores,
		scheduler: scheduler,
		logger:    logger.Named("sync-trigger"),
	}, nil
}

// Start starts the trigger loop
func (t *SyncTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Sync trigger started", zap.Duration("interval", t.interval))
	return nil
}

// Stop stops the trigger loop
func (t *SyncTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.cancel()
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Sync trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *SyncTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.TriggerAll(ctx)
		}
	}
}

// TriggerAll queues one sweep per linked store and returns how many were queued.
// It stops early when the queue is full.
func (t *SyncTrigger) TriggerAll(ctx context.Context) int {
	stores, err := t.stores.FindLinked(ctx)
	if err != nil {
		t.logger.Error("Failed to list linked stores", zap.Error(err))
		return 0
	}

	queued := 0
	for i := range stores {
		store := &stores[i]
		if _, err := t.scheduler.ScheduleSync(store.TenantID, store.ID); err != nil {
			if errors.Is(err, ErrJobQueueFull) || errors.Is(err, ErrSchedulerNotRunning) {
				t.logger.Warn("Stopped queuing scheduled sweeps",
					zap.Int("queued", queued),
					zap.Int("stores", len(stores)),
					zap.Error(err),
				)
				break
			}
			continue
		}
		queued++
	}

	t.logger.Debug("Scheduled sweeps queued", zap.Int("queued", queued), zap.Int("stores", len(stores)))
	return queued
}
