package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStoreSyncer struct {
	mock.Mock
}

func (m *MockStoreSyncer) Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error) {
	args := m.Called(ctx, tenantID, storeID)
	report, _ := args.Get(0).(*inventory.SyncReport)
	return report, args.Error(1)
}

var _ StoreSyncer = (*MockStoreSyncer)(nil)

type MockStoreSource struct {
	mock.Mock
}

func (m *MockStoreSource) FindLinked(ctx context.Context) ([]catalog.StoreRecord, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]catalog.StoreRecord)
	return stores, args.Error(1)
}

// blockingSyncer holds every sweep until released
type blockingSyncer struct {
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (b *blockingSyncer) Sync(ctx context.Context, tenantID, storeID uuid.UUID) (*inventory.SyncReport, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return successReport(tenantID, storeID), nil
}

func successReport(tenantID, storeID uuid.UUID) *inventory.SyncReport {
	report := inventory.NewSyncReport(tenantID, storeID, time.Now())
	report.RequestedCount = 3
	report.UpdatedCount = 2
	report.Complete(time.Now())
	return report
}

func testConfig() InventorySyncSchedulerConfig {
	cfg := DefaultInventorySyncSchedulerConfig()
	cfg.MaxConcurrentJobs = 2
	cfg.JobTimeout = time.Second
	cfg.QueueSize = 4
	cfg.MaxHistory = 10
	return cfg
}

func startScheduler(t *testing.T, cfg InventorySyncSchedulerConfig, syncer StoreSyncer) *InventorySyncScheduler {
	t.Helper()
	s, err := NewInventorySyncScheduler(cfg, syncer, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func waitForHistory(t *testing.T, s *InventorySyncScheduler, n int) []*SyncJob {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(s.GetJobHistory(0)) >= n
	}, 2*time.Second, 10*time.Millisecond)
	return s.GetJobHistory(0)
}

func TestInventorySyncSchedulerConfig_Validate(t *testing.T) {
	cfg := DefaultInventorySyncSchedulerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.MaxConcurrentJobs = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultInventorySyncSchedulerConfig()
	cfg.JobTimeout = 0
	_, err := NewInventorySyncScheduler(cfg, &MockStoreSyncer{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInventorySyncScheduler_SubmitWhenStopped(t *testing.T) {
	s, err := NewInventorySyncScheduler(testConfig(), &MockStoreSyncer{}, zap.NewNop())
	require.NoError(t, err)

	_, err = s.ScheduleSync(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
	assert.False(t, s.IsRunning())
}

func TestInventorySyncScheduler_CompletesJob(t *testing.T) {
	tenantID, storeID := uuid.New(), uuid.New()
	syncer := &MockStoreSyncer{}
	syncer.On("Sync", mock.Anything, tenantID, storeID).Return(successReport(tenantID, storeID), nil).Once()

	s := startScheduler(t, testConfig(), syncer)
	job, err := s.ScheduleSync(tenantID, storeID)
	require.NoError(t, err)
	assert.Equal(t, SyncJobStatusPending, job.Status)

	history := waitForHistory(t, s, 1)
	got := history[0]
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, SyncJobStatusSuccess, got.Status)
	assert.Equal(t, 3, got.RequestedCount)
	assert.Equal(t, 2, got.UpdatedCount)
	assert.NotNil(t, got.StartedAt)
	assert.NotNil(t, got.CompletedAt)
	syncer.AssertExpectations(t)
}

func TestInventorySyncScheduler_SkipsWhenLeaseHeld(t *testing.T) {
	syncer := &MockStoreSyncer{}
	syncer.On("Sync", mock.Anything, mock.Anything, mock.Anything).Return(nil, inventory.ErrSyncInProgress)

	s := startScheduler(t, testConfig(), syncer)
	_, err := s.ScheduleSync(uuid.New(), uuid.New())
	require.NoError(t, err)

	history := waitForHistory(t, s, 1)
	assert.Equal(t, SyncJobStatusSkipped, history[0].Status)
}

func TestInventorySyncScheduler_RecordsFailure(t *testing.T) {
	tenantID, storeID := uuid.New(), uuid.New()
	report := inventory.NewSyncReport(tenantID, storeID, time.Now())
	report.RequestedCount = 5
	report.Fail(stockErr, time.Now())

	syncer := &MockStoreSyncer{}
	syncer.On("Sync", mock.Anything, tenantID, storeID).Return(report, stockErr)

	s := startScheduler(t, testConfig(), syncer)
	_, err := s.ScheduleSync(tenantID, storeID)
	require.NoError(t, err)

	history := waitForHistory(t, s, 1)
	assert.Equal(t, SyncJobStatusFailed, history[0].Status)
	assert.Equal(t, stockErr.Error(), history[0].Error)
	assert.Equal(t, 5, history[0].RequestedCount)
	syncer.AssertNumberOfCalls(t, "Sync", 1)
}

var stockErr = shared.NewDomainError("SERVICE_ERROR", "provider unavailable")

func TestInventorySyncScheduler_QueueFull(t *testing.T) {
	syncer := &blockingSyncer{release: make(chan struct{})}
	cfg := testConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.QueueSize = 1
	s := startScheduler(t, cfg, syncer)

	_, err := s.ScheduleSync(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		syncer.mu.Lock()
		defer syncer.mu.Unlock()
		return syncer.calls == 1
	}, time.Second, 10*time.Millisecond)

	_, err = s.ScheduleSync(uuid.New(), uuid.New())
	require.NoError(t, err)
	_, err = s.ScheduleSync(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrJobQueueFull)

	close(syncer.release)
	waitForHistory(t, s, 2)
}

func TestInventorySyncScheduler_JobTimeout(t *testing.T) {
	syncer := &blockingSyncer{release: make(chan struct{})}
	cfg := testConfig()
	cfg.JobTimeout = 50 * time.Millisecond
	s := startScheduler(t, cfg, syncer)

	_, err := s.ScheduleSync(uuid.New(), uuid.New())
	require.NoError(t, err)

	history := waitForHistory(t, s, 1)
	assert.Equal(t, SyncJobStatusFailed, history[0].Status)
	assert.Contains(t, history[0].Error, context.DeadlineExceeded.Error())
}

func TestInventorySyncScheduler_HistoryByStore(t *testing.T) {
	tenantID, storeA, storeB := uuid.New(), uuid.New(), uuid.New()
	var calls atomic.Int32
	count := func(mock.Arguments) { calls.Add(1) }
	syncer := &MockStoreSyncer{}
	syncer.On("Sync", mock.Anything, tenantID, storeA).Run(count).Return(successReport(tenantID, storeA), nil)
	syncer.On("Sync", mock.Anything, tenantID, storeB).Run(count).Return(successReport(tenantID, storeB), nil)

	cfg := testConfig()
	cfg.MaxHistory = 2
	s := startScheduler(t, cfg, syncer)
	for _, id := range []uuid.UUID{storeA, storeB, storeA} {
		_, err := s.ScheduleSync(tenantID, id)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return calls.Load() == 3
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(s.GetJobHistory(0)) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Len(t, s.GetJobHistory(1), 1)
	total := len(s.GetJobHistoryByStore(tenantID, storeA, 0)) + len(s.GetJobHistoryByStore(tenantID, storeB, 0))
	assert.Equal(t, 2, total, "history trimmed to MaxHistory")
	assert.Empty(t, s.GetJobHistoryByStore(uuid.New(), storeA, 0))
}

func TestInventorySyncScheduler_StopIsIdempotent(t *testing.T) {
	s, err := NewInventorySyncScheduler(testConfig(), &MockStoreSyncer{}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	_, err = s.ScheduleSync(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestSyncTrigger_TriggerAll(t *testing.T) {
	tenantID := uuid.New()
	storeA, err := catalog.NewStoreRecord(tenantID, "Acme Market", "ext-1")
	require.NoError(t, err)
	storeB, err := catalog.NewStoreRecord(tenantID, "Acme Market", "ext-2")
	require.NoError(t, err)

	source := &MockStoreSource{}
	source.On("FindLinked", mock.Anything).Return([]catalog.StoreRecord{*storeA, *storeB}, nil)

	syncer := &MockStoreSyncer{}
	syncer.On("Sync", mock.Anything, tenantID, mock.Anything).Return(nil, inventory.ErrSyncInProgress)

	s := startScheduler(t, testConfig(), syncer)
	trigger, err := NewSyncTrigger(time.Hour, source, s, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, trigger.TriggerAll(context.Background()))
	waitForHistory(t, s, 2)
	syncer.AssertCalled(t, "Sync", mock.Anything, tenantID, storeA.ID)
	syncer.AssertCalled(t, "Sync", mock.Anything, tenantID, storeB.ID)
}

func TestSyncTrigger_ListFailure(t *testing.T) {
	source := &MockStoreSource{}
	source.On("FindLinked", mock.Anything).Return(nil, errors.New("db down"))

	s := startScheduler(t, testConfig(), &MockStoreSyncer{})
	trigger, err := NewSyncTrigger(time.Hour, source, s, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, trigger.TriggerAll(context.Background()))
}

func TestSyncTrigger_RunsOnInterval(t *testing.T) {
	var listed atomic.Bool
	source := &MockStoreSource{}
	source.On("FindLinked", mock.Anything).Run(func(mock.Arguments) { listed.Store(true) }).Return([]catalog.StoreRecord{}, nil)

	s := startScheduler(t, testConfig(), &MockStoreSyncer{})
	trigger, err := NewSyncTrigger(20*time.Millisecond, source, s, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, trigger.Start(context.Background()))
	require.Eventually(t, listed.Load, time.Second, 10*time.Millisecond)
	require.NoError(t, trigger.Stop(context.Background()))

	_, err = NewSyncTrigger(0, source, s, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
