package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// SyncStatus is the outcome of a store's most recent reconciliation sweep
type SyncStatus string

const (
	SyncStatusNever   SyncStatus = ""
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// StoreRecord represents a physical store of a retail chain
type StoreRecord struct {
	shared.TenantAggregateRoot
	BrandName       string
	ExternalStoreID string
	LastSyncedAt    *time.Time
	LastSyncStatus  SyncStatus
}

// NewStoreRecord creates a new store record
func NewStoreRecord(tenantID uuid.UUID, brandName, externalStoreID string) (*StoreRecord, error) {
	if strings.TrimSpace(brandName) == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot be empty")
	}
	return &StoreRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BrandName:           brandName,
		ExternalStoreID:     strings.TrimSpace(externalStoreID),
	}, nil
}

// BrandTag returns the store's brand tag
func (s *StoreRecord) BrandTag() string {
	return BrandTagOf(s.BrandName)
}

// HasExternalStoreID returns true if the store is linked to the provider
func (s *StoreRecord) HasExternalStoreID() bool {
	return strings.TrimSpace(s.ExternalStoreID) != ""
}

// RecordSync stores the outcome of a reconciliation sweep
func (s *StoreRecord) RecordSync(status SyncStatus, at time.Time) {
	s.LastSyncedAt = &at
	s.LastSyncStatus = status
	s.UpdatedAt = at
	s.IncrementVersion()
}
