package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates item with valid inputs", func(t *testing.T) {
		item, err := NewCatalogItem(tenantID, " 1234 ", "Zara", "Linen shirt", decimal.NewFromInt(30))
		require.NoError(t, err)

		assert.Equal(t, tenantID, item.TenantID)
		assert.Equal(t, "1234", item.SKU)
		assert.Equal(t, "Zara", item.BrandTag)
		assert.False(t, item.InStock)
		assert.Nil(t, item.LastSyncedAt)
		assert.Equal(t, 1, item.GetVersion())
		assert.True(t, item.HasBrandTag())
	})

	t.Run("fails with empty sku", func(t *testing.T) {
		_, err := NewCatalogItem(tenantID, "  ", "Zara", "Linen shirt", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewCatalogItem(tenantID, "1234", "", "Linen shirt", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("untagged item has no brand tag", func(t *testing.T) {
		item, err := NewCatalogItem(tenantID, "1234", "   ", "Linen shirt", decimal.Zero)
		require.NoError(t, err)
		assert.False(t, item.HasBrandTag())
	})
}

func TestCatalogItem_ApplyStockSync(t *testing.T) {
	item, err := NewCatalogItem(uuid.New(), "1234", "Zara", "Linen shirt", decimal.Zero)
	require.NoError(t, err)
	item.InStock = true

	syncedAt := time.Now()
	flipped := item.ApplyStockSync(false, syncedAt)

	assert.True(t, flipped)
	assert.False(t, item.InStock)
	require.NotNil(t, item.LastSyncedAt)
	assert.Equal(t, syncedAt, *item.LastSyncedAt)
	assert.Equal(t, 2, item.GetVersion())

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*StockChangedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeStockChanged, event.EventType())
	assert.Equal(t, item.ID, event.CatalogItemID)
	assert.True(t, event.PreviousInStock)
	assert.False(t, event.InStock)

	t.Run("same flag still stamps lastSyncedAt without an event", func(t *testing.T) {
		item.ClearDomainEvents()
		later := syncedAt.Add(time.Minute)

		assert.False(t, item.ApplyStockSync(false, later))
		assert.Equal(t, later, *item.LastSyncedAt)
		assert.Empty(t, item.GetDomainEvents())
	})
}

func TestBrandTags(t *testing.T) {
	assert.Equal(t, "Zara", BrandTagOf("Zara Gran Via"))
	assert.Equal(t, "H&M", BrandTagOf("  H&M   Oxford Street"))
	assert.Equal(t, "", BrandTagOf("   "))

	assert.True(t, MatchesBrand("ZARA", "zara"))
	assert.True(t, MatchesBrand("", "zara"))
	assert.True(t, MatchesBrand("  ", "zara"))
	assert.False(t, MatchesBrand("Mango", "Zara"))
	assert.True(t, MatchesBrand("straße", "STRASSE"))
}

func TestStoreRecord(t *testing.T) {
	store, err := NewStoreRecord(uuid.New(), "Zara Gran Via", " ZR-001 ")
	require.NoError(t, err)
	assert.Equal(t, "Zara", store.BrandTag())
	assert.Equal(t, "ZR-001", store.ExternalStoreID)
	assert.True(t, store.HasExternalStoreID())

	at := time.Now()
	store.RecordSync(SyncStatusPartial, at)
	assert.Equal(t, SyncStatusPartial, store.LastSyncStatus)
	assert.Equal(t, at, *store.LastSyncedAt)

	unlinked, err := NewStoreRecord(uuid.New(), "Zara Online", "")
	require.NoError(t, err)
	assert.False(t, unlinked.HasExternalStoreID())

	_, err = NewStoreRecord(uuid.New(), " ", "X")
	require.Error(t, err)
}
