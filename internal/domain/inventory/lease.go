package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrLeaseHeld is returned by TryAcquire when another holder owns the lease
var ErrLeaseHeld = errors.New("inventory: sync lease held by another sweep")

// Lease is a held, TTL-bound lock on a store's reconciliation
type Lease interface {
	// Release gives up the lease if it is still held by this holder
	Release(ctx context.Context) error
}

// LeaseManager hands out per-store sync leases
type LeaseManager interface {
	// TryAcquire takes the lease for key or fails with ErrLeaseHeld
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// SyncLeaseKey returns the lease key of a store
func SyncLeaseKey(tenantID, storeID uuid.UUID) string {
	return fmt.Sprintf("inventory-sync:%s:%s", tenantID, storeID)
}
