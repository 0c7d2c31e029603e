package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/inventory"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLeaseManager_TryAcquire(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryLeaseManager()

	lease, err := m.TryAcquire(ctx, "store-1", time.Minute)
	require.NoError(t, err)

	_, err = m.TryAcquire(ctx, "store-1", time.Minute)
	assert.ErrorIs(t, err, inventory.ErrLeaseHeld)

	_, err = m.TryAcquire(ctx, "store-2", time.Minute)
	assert.NoError(t, err, "leases are per key")

	require.NoError(t, lease.Release(ctx))
	_, err = m.TryAcquire(ctx, "store-1", time.Minute)
	assert.NoError(t, err)
}

func TestInMemoryLeaseManager_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewInMemoryLeaseManager()
	m.now = func() time.Time { return now }

	stale, err := m.TryAcquire(ctx, "store-1", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := m.TryAcquire(ctx, "store-1", time.Minute)
	require.NoError(t, err, "expired lease can be taken over")

	require.NoError(t, stale.Release(ctx))
	_, err = m.TryAcquire(ctx, "store-1", time.Minute)
	assert.ErrorIs(t, err, inventory.ErrLeaseHeld, "stale release must not free the new holder")

	require.NoError(t, fresh.Release(ctx))
}

func TestInMemoryChangeFeed_PublishSubscribe(t *testing.T) {
	ctx := context.Background()
	feed := NewInMemoryChangeFeed()
	topic := sibling.Topic{Collection: "addresses", OwnerID: uuid.New()}
	other := sibling.Topic{Collection: "addresses", OwnerID: uuid.New()}

	w, err := feed.Subscribe(ctx, topic)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Watchers(topic))

	require.NoError(t, feed.Publish(ctx, other))
	select {
	case <-w.Changes():
		t.Fatal("unexpected signal for another owner")
	default:
	}

	require.NoError(t, feed.Publish(ctx, topic))
	require.NoError(t, feed.Publish(ctx, topic))
	select {
	case _, ok := <-w.Changes():
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}
	select {
	case <-w.Changes():
		t.Fatal("pending signals should coalesce")
	default:
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, ok := <-w.Changes()
	assert.False(t, ok, "changes closed after Close")
	assert.Equal(t, 0, feed.Watchers(topic))
	assert.NoError(t, feed.Publish(ctx, topic))
}

func TestNewCoordination_DisabledUsesMemory(t *testing.T) {
	c := NewCoordination(context.Background(), configDisabled(), testLogger(t))
	assert.False(t, c.Distributed)
	assert.IsType(t, &InMemoryLeaseManager{}, c.Leases)
	assert.IsType(t, &InMemoryChangeFeed{}, c.Feed)
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewCoordination_UnreachableFallsBack(t *testing.T) {
	cfg := configDisabled()
	cfg.Enabled = true
	cfg.Host = "127.0.0.1"
	cfg.Port = 1

	c := NewCoordination(context.Background(), cfg, testLogger(t))
	assert.False(t, c.Distributed)
	assert.IsType(t, &InMemoryLeaseManager{}, c.Leases)
}
