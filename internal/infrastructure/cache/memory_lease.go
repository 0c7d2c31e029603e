package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shelfsync/backend/internal/domain/inventory"
)

// InMemoryLeaseManager implements inventory.LeaseManager within one process.
// Leases are not shared across instances.
type InMemoryLeaseManager struct {
	mu     sync.Mutex
	leases map[string]memoryLeaseEntry
	seq    uint64
	now    func() time.Time
}

type memoryLeaseEntry struct {
	id      uint64
	expires time.Time
}

// NewInMemoryLeaseManager creates an in-process lease manager
func NewInMemoryLeaseManager() *InMemoryLeaseManager {
	return &InMemoryLeaseManager{leases: make(map[string]memoryLeaseEntry), now: time.Now}
}

// TryAcquire takes the lease unless an unexpired holder exists
func (m *InMemoryLeaseManager) TryAcquire(_ context.Context, key string, ttl time.Duration) (inventory.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.leases[key]; ok && now.Before(held.expires) {
		return nil, inventory.ErrLeaseHeld
	}
	m.seq++
	m.leases[key] = memoryLeaseEntry{id: m.seq, expires: now.Add(ttl)}
	return &memoryLease{manager: m, key: key, id: m.seq}, nil
}

type memoryLease struct {
	manager *InMemoryLeaseManager
	key     string
	id      uint64
}

func (l *memoryLease) Release(context.Context) error {
	l.manager.mu.Lock()
	defer l.manager.mu.Unlock()
	if held, ok := l.manager.leases[l.key]; ok && held.id == l.id {
		delete(l.manager.leases, l.key)
	}
	return nil
}

var _ inventory.LeaseManager = (*InMemoryLeaseManager)(nil)
