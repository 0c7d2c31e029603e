package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/stock"
	"github.com/stretchr/testify/mock"
)

// MockStoreRepository is a mock implementation of catalog.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.StoreRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StoreRecord), args.Error(1)
}

func (m *MockStoreRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.StoreRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StoreRecord), args.Error(1)
}

func (m *MockStoreRepository) FindLinked(ctx context.Context) ([]catalog.StoreRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StoreRecord), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, store *catalog.StoreRecord) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) UpdateSyncStatus(ctx context.Context, tenantID, id uuid.UUID, status catalog.SyncStatus, at time.Time) error {
	args := m.Called(ctx, tenantID, id, status, at)
	return args.Error(0)
}

// MockCatalogItemRepository is a mock implementation of catalog.CatalogItemRepository
type MockCatalogItemRepository struct {
	mock.Mock
	maxBatch int
}

func (m *MockCatalogItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) FindByBrandScope(ctx context.Context, tenantID uuid.UUID, brandTag string) ([]catalog.CatalogItem, error) {
	args := m.Called(ctx, tenantID, brandTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogItemRepository) ApplyStockUpdates(ctx context.Context, tenantID uuid.UUID, updates []catalog.StockUpdate) error {
	args := m.Called(ctx, tenantID, updates)
	return args.Error(0)
}

func (m *MockCatalogItemRepository) MaxBatchSize() int {
	if m.maxBatch == 0 {
		return 500
	}
	return m.maxBatch
}

// MockInventoryProvider is a mock implementation of stock.InventoryProvider
type MockInventoryProvider struct {
	mock.Mock
}

func (m *MockInventoryProvider) CheckNearbyAvailability(ctx context.Context, query stock.AvailabilityQuery) ([]stock.AvailabilityResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.AvailabilityResult), args.Error(1)
}

func (m *MockInventoryProvider) CheckStoreStock(ctx context.Context, externalStoreID string, skus []string) ([]stock.StoreStockLevel, error) {
	args := m.Called(ctx, externalStoreID, skus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StoreStockLevel), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeLeases is an in-process lease manager for tests
type fakeLeases struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired int
	released int
	lastTTL  time.Duration
}

type fakeLease struct {
	owner *fakeLeases
	key   string
}

func newFakeLeases() *fakeLeases {
	return &fakeLeases{held: make(map[string]bool)}
}

func (f *fakeLeases) TryAcquire(_ context.Context, key string, ttl time.Duration) (inventory.Lease, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTTL = ttl
	if f.held[key] {
		return nil, inventory.ErrLeaseHeld
	}
	f.held[key] = true
	f.acquired++
	return &fakeLease{owner: f, key: key}, nil
}

func (l *fakeLease) Release(context.Context) error {
	l.owner.mu.Lock()
	defer l.owner.mu.Unlock()
	delete(l.owner.held, l.key)
	l.owner.released++
	return nil
}

// Ensure mocks implement interfaces
var (
	_ catalog.StoreRepository       = (*MockStoreRepository)(nil)
	_ catalog.CatalogItemRepository = (*MockCatalogItemRepository)(nil)
	_ stock.InventoryProvider       = (*MockInventoryProvider)(nil)
	_ shared.EventPublisher         = (*MockEventPublisher)(nil)
	_ inventory.LeaseManager        = (*fakeLeases)(nil)
)
