package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
)

// StoreResponse represents a store and its sync bookkeeping
type StoreResponse struct {
	ID              uuid.UUID  `json:"id"`
	BrandName       string     `json:"brand_name"`
	BrandTag        string     `json:"brand_tag"`
	ExternalStoreID string     `json:"external_store_id,omitempty"`
	LastSyncedAt    *time.Time `json:"last_synced_at,omitempty"`
	LastSyncStatus  string     `json:"last_sync_status,omitempty"`
	Version         int        `json:"version"`
}

// ChunkFailureResponse describes one batch that failed to commit
type ChunkFailureResponse struct {
	Chunk int    `json:"chunk"`
	Size  int    `json:"size"`
	Error string `json:"error"`
}

// SkuResultResponse describes the outcome of one returned SKU
type SkuResultResponse struct {
	SKU           string     `json:"sku"`
	CatalogItemID *uuid.UUID `json:"catalog_item_id,omitempty"`
	InStock       bool       `json:"in_stock"`
	Outcome       string     `json:"outcome"`
	Error         string     `json:"error,omitempty"`
}

// SyncReportResponse represents a reconciliation sweep outcome
type SyncReportResponse struct {
	ID              uuid.UUID              `json:"id"`
	StoreID         uuid.UUID              `json:"store_id"`
	ExternalStoreID string                 `json:"external_store_id,omitempty"`
	BrandTag        string                 `json:"brand_tag,omitempty"`
	Status          string                 `json:"status"`
	RequestedCount  int                    `json:"requested_count"`
	ReturnedCount   int                    `json:"returned_count"`
	UpdatedCount    int                    `json:"updated_count"`
	UnmatchedCount  int                    `json:"unmatched_count"`
	FailedCount     int                    `json:"failed_count"`
	ChunkCount      int                    `json:"chunk_count"`
	ChunkFailures   []ChunkFailureResponse `json:"chunk_failures,omitempty"`
	Results         []SkuResultResponse    `json:"results,omitempty"`
	Error           string                 `json:"error,omitempty"`
	StartedAt       time.Time              `json:"started_at"`
	CompletedAt     time.Time              `json:"completed_at"`
	DurationMs      int64                  `json:"duration_ms"`
}

// SyncJobResponse represents a queued or finished scheduled sweep
type SyncJobResponse struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"store_id"`
	Status         string     `json:"status"`
	Error          string     `json:"error,omitempty"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	RequestedCount int        `json:"requested_count"`
	UpdatedCount   int        `json:"updated_count"`
	UnmatchedCount int        `json:"unmatched_count"`
}

// SyncHistoryResponse combines the sweep reports and scheduler jobs of a store
type SyncHistoryResponse struct {
	Reports []SyncReportResponse `json:"reports"`
	Jobs    []SyncJobResponse    `json:"jobs"`
}

func toStoreResponse(s *catalog.StoreRecord) StoreResponse {
	return StoreResponse{
		ID:              s.ID,
		BrandName:       s.BrandName,
		BrandTag:        s.BrandTag(),
		ExternalStoreID: s.ExternalStoreID,
		LastSyncedAt:    s.LastSyncedAt,
		LastSyncStatus:  string(s.LastSyncStatus),
		Version:         s.Version,
	}
}

// toSyncReportResponse converts a report; per-SKU results are included only when withResults is set
func toSyncReportResponse(r *inventory.SyncReport, withResults bool) SyncReportResponse {
	resp := SyncReportResponse{
		ID:              r.ID,
		StoreID:         r.StoreID,
		ExternalStoreID: r.ExternalStoreID,
		BrandTag:        r.BrandTag,
		Status:          string(r.Status),
		RequestedCount:  r.RequestedCount,
		ReturnedCount:   r.ReturnedCount,
		UpdatedCount:    r.UpdatedCount,
		UnmatchedCount:  r.UnmatchedCount(),
		FailedCount:     r.FailedCount(),
		ChunkCount:      r.ChunkCount,
		Error:           r.Error,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
		DurationMs:      r.Duration().Milliseconds(),
	}
	for _, f := range r.ChunkFailures {
		resp.ChunkFailures = append(resp.ChunkFailures, ChunkFailureResponse{Chunk: f.Chunk, Size: f.Size, Error: f.Error})
	}
	if withResults {
		for _, res := range r.Results {
			resp.Results = append(resp.Results, SkuResultResponse{
				SKU:           res.SKU,
				CatalogItemID: res.CatalogItemID,
				InStock:       res.InStock,
				Outcome:       string(res.Outcome),
				Error:         res.Error,
			})
		}
	}
	return resp
}

func toSyncJobResponse(j *scheduler.SyncJob) SyncJobResponse {
	return SyncJobResponse{
		ID:             j.ID,
		StoreID:        j.StoreID,
		Status:         string(j.Status),
		Error:          j.Error,
		SubmittedAt:    j.SubmittedAt,
		StartedAt:      j.StartedAt,
		CompletedAt:    j.CompletedAt,
		RequestedCount: j.RequestedCount,
		UpdatedCount:   j.UpdatedCount,
		UnmatchedCount: j.UnmatchedCount,
	}
}
