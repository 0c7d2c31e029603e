package scheduler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/inventory"
)

// SyncJobStatus represents the status of a store sync job
type SyncJobStatus string

const (
	SyncJobStatusPending SyncJobStatus = "PENDING"
	SyncJobStatusRunning SyncJobStatus = "RUNNING"
	SyncJobStatusSuccess SyncJobStatus = "SUCCESS"
	SyncJobStatusPartial SyncJobStatus = "PARTIAL"
	SyncJobStatusFailed  SyncJobStatus = "FAILED"
	// SyncJobStatusSkipped marks a sweep skipped because another one held the store's lease
	SyncJobStatusSkipped SyncJobStatus = "SKIPPED"
)

// SyncJob is one scheduled reconciliation sweep of a store
type SyncJob struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	StoreID     uuid.UUID
	Status      SyncJobStatus
	Error       string
	SubmittedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	RequestedCount int
	UpdatedCount   int
	UnmatchedCount int
}

// NewSyncJob creates a pending sync job
func NewSyncJob(tenantID, storeID uuid.UUID) *SyncJob {
	return &SyncJob{
		ID:          uuid.New(),
		TenantID:    tenantID,
		StoreID:     storeID,
		Status:      SyncJobStatusPending,
		SubmittedAt: time.Now(),
	}
}

// Start marks the job as running
func (j *SyncJob) Start() {
	now := time.Now()
	j.Status = SyncJobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete copies the sweep outcome onto the job
func (j *SyncJob) Complete(report *inventory.SyncReport) {
	now := time.Now()
	j.CompletedAt = &now
	j.RequestedCount = report.RequestedCount
	j.UpdatedCount = report.UpdatedCount
	j.UnmatchedCount = report.UnmatchedCount()

	switch report.Status {
	case inventory.SyncStatusSuccess:
		j.Status = SyncJobStatusSuccess
	case inventory.SyncStatusPartial:
		j.Status = SyncJobStatusPartial
	default:
		j.Status = SyncJobStatusFailed
	}
}

// Skip marks the job as skipped
func (j *SyncJob) Skip(reason string) {
	now := time.Now()
	j.Status = SyncJobStatusSkipped
	j.CompletedAt = &now
	j.Error = reason
}

// Fail marks the job as failed
func (j *SyncJob) Fail(err string) {
	now := time.Now()
	j.Status = SyncJobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}
