package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
)

// SyncStatus is the overall outcome of a sweep
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "SUCCESS"
	SyncStatusPartial SyncStatus = "PARTIAL"
	SyncStatusFailed  SyncStatus = "FAILED"
)

// ToStoreStatus maps the sweep outcome to the store's bookkeeping status
func (s SyncStatus) ToStoreStatus() catalog.SyncStatus {
	switch s {
	case SyncStatusSuccess:
		return catalog.SyncStatusSuccess
	case SyncStatusPartial:
		return catalog.SyncStatusPartial
	default:
		return catalog.SyncStatusFailed
	}
}

// SkuOutcome is the result of one SKU returned by the provider
type SkuOutcome string

const (
	SkuOutcomeUpdated   SkuOutcome = "updated"
	SkuOutcomeUnmatched SkuOutcome = "unmatched"
	SkuOutcomeFailed    SkuOutcome = "failed"
)

// SkuResult reports what happened to one SKU
type SkuResult struct {
	SKU           string
	CatalogItemID *uuid.UUID
	InStock       bool
	Outcome       SkuOutcome
	Chunk         int
	Error         string
}

// ChunkFailure reports one batch that failed to commit
type ChunkFailure struct {
	Chunk int
	Size  int
	Error string
}

// SyncReport is the outcome of one reconciliation sweep
type SyncReport struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	StoreID         uuid.UUID
	ExternalStoreID string
	BrandTag        string
	Status          SyncStatus
	RequestedCount  int
	ReturnedCount   int
	UpdatedCount    int
	ChunkCount      int
	Results         []SkuResult
	ChunkFailures   []ChunkFailure
	Error           string
	StartedAt       time.Time
	CompletedAt     time.Time
}

// NewSyncReport starts a report for a store
func NewSyncReport(tenantID, storeID uuid.UUID, startedAt time.Time) *SyncReport {
	return &SyncReport{
		ID:        uuid.New(),
		TenantID:  tenantID,
		StoreID:   storeID,
		StartedAt: startedAt,
	}
}

// AddUnmatched records a returned SKU with no catalog item
func (r *SyncReport) AddUnmatched(sku string, inStock bool) {
	r.Results = append(r.Results, SkuResult{SKU: sku, InStock: inStock, Outcome: SkuOutcomeUnmatched, Chunk: -1})
}

// Fail marks the sweep as failed before any commit
func (r *SyncReport) Fail(err error, at time.Time) {
	r.Status = SyncStatusFailed
	r.Error = err.Error()
	r.CompletedAt = at
}

// Complete derives the status from the committed and failed chunks
func (r *SyncReport) Complete(at time.Time) {
	r.CompletedAt = at
	switch {
	case len(r.ChunkFailures) == 0:
		r.Status = SyncStatusSuccess
	case r.UpdatedCount > 0:
		r.Status = SyncStatusPartial
	default:
		r.Status = SyncStatusFailed
	}
}

// FailedCount returns the number of matched SKUs whose chunk failed
func (r *SyncReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == SkuOutcomeFailed {
			n++
		}
	}
	return n
}

// UnmatchedCount returns the number of returned SKUs with no catalog item
func (r *SyncReport) UnmatchedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == SkuOutcomeUnmatched {
			n++
		}
	}
	return n
}

// Duration returns how long the sweep took
func (r *SyncReport) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
