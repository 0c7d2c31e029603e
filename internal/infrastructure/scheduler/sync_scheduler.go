// Package scheduler runs background reconciliation sweeps.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StoreSyncer runs one reconciliation sweep of a store
type StoreSyncer interface {
	Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error)
}

// InventorySyncSchedulerConfig holds configuration for the sync scheduler
type InventorySyncSchedulerConfig struct {
	// MaxConcurrentJobs is the number of workers
	MaxConcurrentJobs int
	// JobTimeout is the maximum time one sweep can run
	JobTimeout time.Duration
	// QueueSize bounds the number of pending jobs
	QueueSize int
	// MaxHistory is the number of finished jobs kept for monitoring
	MaxHistory int
}

// DefaultInventorySyncSchedulerConfig returns default configuration
func DefaultInventorySyncSchedulerConfig() InventorySyncSchedulerConfig {
	return InventorySyncSchedulerConfig{
		MaxConcurrentJobs: 4,
		JobTimeout:        5 * time.Minute,
		QueueSize:         100,
		MaxHistory:        100,
	}
}

// Validate validates the configuration
func (c *InventorySyncSchedulerConfig) Validate() error {
	if c.MaxConcurrentJobs <= 0 || c.JobTimeout <= 0 || c.QueueSize <= 0 || c.MaxHistory <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// InventorySyncScheduler runs store sync jobs on a bounded worker pool.
// Failed jobs are not retried; the next scheduled sweep picks the store up again.
type InventorySyncScheduler struct {
	config InventorySyncSchedulerConfig
	syncer StoreSyncer
	logger *zap.Logger

	jobs      chan *SyncJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	historyMu sync.RWMutex
	history   []*SyncJob
}

// NewInventorySyncScheduler creates a new sync scheduler
func NewInventorySyncScheduler(config InventorySyncSchedulerConfig, syncer StoreSyncer, logger *zap.Logger) (*InventorySyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &InventorySyncScheduler{
		config:  config,
		syncer:  syncer,
		logger:  logger.Named("sync-scheduler"),
		history: make([]*SyncJob, 0, config.MaxHistory),
	}, nil
}

// Start starts the worker pool
func (s *InventorySyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true
	s.jobs = make(chan *SyncJob, s.config.QueueSize)

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i, s.jobs)
	}

	s.logger.Info("Inventory sync scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running sweeps and waits for the workers to exit
func (s *InventorySyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	close(s.jobs)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Inventory sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Inventory sync scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the scheduler accepts jobs
func (s *InventorySyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// SubmitJob queues a job without blocking
func (s *InventorySyncScheduler) SubmitJob(job *SyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return ErrSchedulerNotRunning
	}

	select {
	case s.jobs <- job:
		s.logger.Debug("Sync job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("tenant_id", job.TenantID.String()),
			zap.String("store_id", job.StoreID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// ScheduleSync queues a sweep of one store and returns the job as submitted.
// The queued job is owned by the workers; finished jobs show up in the history.
func (s *InventorySyncScheduler) ScheduleSync(tenantID, storeID uuid.UUID) (SyncJob, error) {
	job := NewSyncJob(tenantID, storeID)
	snapshot := *job
	if err := s.SubmitJob(job); err != nil {
		return SyncJob{}, err
	}
	return snapshot, nil
}

func (s *InventorySyncScheduler) worker(ctx context.Context, workerID int, jobs <-chan *SyncJob) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *InventorySyncScheduler) processJob(ctx context.Context, job *SyncJob, workerID int) {
	job.Start()
	log := s.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("tenant_id", job.TenantID.String()),
		zap.String("store_id", job.StoreID.String()),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	var (
		report *inventory.SyncReport
		err    error
	)
	telemetry.WithProfilingLabels(jobCtx, map[string]string{
		telemetry.ProfilingLabelOperation: "inventory_sync",
		telemetry.ProfilingLabelTenantID:  job.TenantID.String(),
	}, func(c context.Context) {
		report, err = s.syncer.Sync(c, job.TenantID, job.StoreID)
	})
	switch {
	case errors.Is(err, inventory.ErrSyncInProgress):
		job.Skip(err.Error())
		log.Info("Sync job skipped, store already syncing")
	case err != nil:
		job.Fail(err.Error())
		if report != nil {
			job.RequestedCount = report.RequestedCount
		}
		log.Error("Sync job failed", zap.Error(err))
	default:
		job.Complete(report)
		log.Info("Sync job completed",
			zap.String("status", string(job.Status)),
			zap.Int("requested", job.RequestedCount),
			zap.Int("updated", job.UpdatedCount),
			zap.Int("unmatched", job.UnmatchedCount),
		)
	}

	s.addToHistory(job)
}

func (s *InventorySyncScheduler) addToHistory(job *SyncJob) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append([]*SyncJob{job}, s.history...)
	if len(s.history) > s.config.MaxHistory {
		s.history = s.history[:s.config.MaxHistory]
	}
}

// GetJobHistory returns recent finished jobs, newest first
func (s *InventorySyncScheduler) GetJobHistory(limit int) []*SyncJob {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	result := make([]*SyncJob, limit)
	copy(result, s.history[:limit])
	return result
}

// GetJobHistoryByStore returns finished jobs of one store, newest first
func (s *InventorySyncScheduler) GetJobHistoryByStore(tenantID, storeID uuid.UUID, limit int) []*SyncJob {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	result := make([]*SyncJob, 0)
	for _, job := range s.history {
		if job.TenantID == tenantID && job.StoreID == storeID {
			result = append(result, job)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result
}
