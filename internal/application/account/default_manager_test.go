package account

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddressManager() (*DefaultManager[*account.SavedAddress], *memoryStore[*account.SavedAddress], *memoryFeed) {
	store := newMemoryStore(account.CollectionAddresses, cloneAddress)
	feed := newMemoryFeed()
	return NewDefaultManager[*account.SavedAddress](store, feed, nil), store, feed
}

func newAddress(t *testing.T, owner uuid.UUID, label string) *account.SavedAddress {
	t.Helper()
	addr, err := account.NewSavedAddress(owner, account.AddressDetails{
		Label:         label,
		RecipientName: "Ana Ruiz",
		Line1:         label + " street 1",
		City:          "Madrid",
		Country:       "ES",
	})
	require.NoError(t, err)
	return addr
}

func defaults(t *testing.T, m *DefaultManager[*account.SavedAddress], owner uuid.UUID) map[string]bool {
	t.Helper()
	list, err := m.List(context.Background(), owner)
	require.NoError(t, err)
	out := make(map[string]bool, len(list))
	for _, a := range list {
		out[a.Label] = a.IsDefault()
	}
	return out
}

func TestDefaultManager_SetDefaultScenario(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newAddressManager()
	owner := uuid.New()

	a := newAddress(t, owner, "A")
	b := newAddress(t, owner, "B")
	require.NoError(t, m.Add(ctx, a, true))
	require.NoError(t, m.Add(ctx, b, false))
	assert.Equal(t, map[string]bool{"A": true, "B": false}, defaults(t, m, owner))

	require.NoError(t, m.SetDefault(ctx, owner, b.ID))

	assert.Equal(t, map[string]bool{"A": false, "B": true}, defaults(t, m, owner))
	assert.Equal(t, 3, store.commits)

	got, err := m.Default(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestDefaultManager_SetDefaultIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newAddressManager()
	owner := uuid.New()
	a := newAddress(t, owner, "A")
	require.NoError(t, m.Add(ctx, a, true))

	require.NoError(t, m.SetDefault(ctx, owner, a.ID))
	assert.Equal(t, 1, store.commits)

	assert.ErrorIs(t, m.SetDefault(ctx, owner, uuid.New()), shared.ErrNotFound)
}

func TestDefaultManager_AddDefaultClearsPrevious(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newAddressManager()
	owner := uuid.New()

	require.NoError(t, m.Add(ctx, newAddress(t, owner, "A"), true))
	require.NoError(t, m.Add(ctx, newAddress(t, owner, "B"), true))

	assert.Equal(t, map[string]bool{"A": false, "B": true}, defaults(t, m, owner))
}

func TestDefaultManager_UpdateDefaultClearsOthers(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newAddressManager()
	owner := uuid.New()
	a := newAddress(t, owner, "A")
	b := newAddress(t, owner, "B")
	require.NoError(t, m.Add(ctx, a, true))
	require.NoError(t, m.Add(ctx, b, false))

	loaded, err := m.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	loaded.Label = "B2"
	loaded.SetDefault(true)
	require.NoError(t, m.Update(ctx, loaded))

	assert.Equal(t, map[string]bool{"A": false, "B2": true}, defaults(t, m, owner))
	assert.Equal(t, 2, loaded.GetVersion())
}

func TestDefaultManager_DeleteDefaultLeavesNone(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newAddressManager()
	owner := uuid.New()
	a := newAddress(t, owner, "A")
	require.NoError(t, m.Add(ctx, a, true))
	require.NoError(t, m.Add(ctx, newAddress(t, owner, "B"), false))

	require.NoError(t, m.Delete(ctx, owner, a.ID))

	assert.Equal(t, map[string]bool{"B": false}, defaults(t, m, owner))
	_, err := m.Default(ctx, owner)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDefaultManager_ConcurrentSetDefaultConflicts(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newAddressManager()
	owner := uuid.New()
	a := newAddress(t, owner, "A")
	b := newAddress(t, owner, "B")
	c := newAddress(t, owner, "C")
	require.NoError(t, m.Add(ctx, a, true))
	require.NoError(t, m.Add(ctx, b, false))
	require.NoError(t, m.Add(ctx, c, false))

	// another writer makes C the default between our read and our commit
	store.interleave = func() {
		require.NoError(t, m.SetDefault(ctx, owner, c.ID))
	}

	err := m.SetDefault(ctx, owner, b.ID)

	require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, map[string]bool{"A": false, "B": false, "C": true}, defaults(t, m, owner))
}

func TestDefaultManager_FailedCommitLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newAddressManager()
	owner := uuid.New()
	a := newAddress(t, owner, "A")
	b := newAddress(t, owner, "B")
	require.NoError(t, m.Add(ctx, a, true))
	require.NoError(t, m.Add(ctx, b, false))

	store.failNext = errStoreDown
	err := m.SetDefault(ctx, owner, b.ID)

	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, map[string]bool{"A": true, "B": false}, defaults(t, m, owner))
}

func TestDefaultManager_AtMostOneDefaultUnderRandomOperations(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newAddressManager()
	owner := uuid.New()
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 300; step++ {
		list, err := m.List(ctx, owner)
		require.NoError(t, err)

		switch op := rng.Intn(4); {
		case op == 0 || len(list) == 0:
			require.NoError(t, m.Add(ctx, newAddress(t, owner, uuid.NewString()), rng.Intn(2) == 0))
		case op == 1:
			target := list[rng.Intn(len(list))]
			target.SetDefault(rng.Intn(2) == 0)
			require.NoError(t, m.Update(ctx, target))
		case op == 2:
			require.NoError(t, m.SetDefault(ctx, owner, list[rng.Intn(len(list))].ID))
		default:
			require.NoError(t, m.Delete(ctx, owner, list[rng.Intn(len(list))].ID))
		}

		after, err := m.List(ctx, owner)
		require.NoError(t, err)
		assert.LessOrEqual(t, sibling.CountDefaults(after), 1, "step %d", step)
	}
	assert.Positive(t, store.commits)
}

func TestDefaultManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newAddressManager()
	owner := uuid.New()
	require.NoError(t, m.Add(ctx, newAddress(t, owner, "A"), true))

	snapshots := make(chan []*account.SavedAddress, 4)
	sub, err := m.Subscribe(ctx, owner, func(list []*account.SavedAddress) {
		snapshots <- list
	})
	require.NoError(t, err)

	first := <-snapshots
	require.Len(t, first, 1)

	require.NoError(t, m.Add(ctx, newAddress(t, owner, "B"), true))

	select {
	case next := <-snapshots:
		require.Len(t, next, 2)
		assert.Equal(t, 1, sibling.CountDefaults(next))
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after change")
	}

	sub.Close()
	sub.Close()
	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription not stopped")
	}
}

func TestDefaultManager_SubscribeWithoutFeed(t *testing.T) {
	store := newMemoryStore(account.CollectionAddresses, cloneAddress)
	m := NewDefaultManager[*account.SavedAddress](store, nil, nil)

	_, err := m.Subscribe(context.Background(), uuid.New(), func([]*account.SavedAddress) {})
	assert.ErrorIs(t, err, ErrSubscriptionsUnavailable)
}
