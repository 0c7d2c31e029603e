package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogItemModel_FoldsBrandKey(t *testing.T) {
	item, err := catalog.NewCatalogItem(uuid.New(), "SKU-1", "ZARA", "Linen shirt", decimal.NewFromInt(30))
	require.NoError(t, err)

	m := CatalogItemModelFromDomain(item)
	assert.Equal(t, "ZARA", m.BrandTag)
	assert.Equal(t, "zara", m.BrandKey)

	back := m.ToDomain()
	assert.Equal(t, item.ID, back.ID)
	assert.Equal(t, item.TenantID, back.TenantID)
	assert.Equal(t, 1, back.Version)
	assert.True(t, item.Price.Equal(back.Price))
}

func TestStoreModel_SyncStatus(t *testing.T) {
	store, err := catalog.NewStoreRecord(uuid.New(), "Zara Gran Via", "1234")
	require.NoError(t, err)
	store.RecordSync(catalog.SyncStatusPartial, time.Now())

	back := StoreModelFromDomain(store).ToDomain()
	assert.Equal(t, catalog.SyncStatusPartial, back.LastSyncStatus)
	assert.Equal(t, 2, back.Version)
	require.NotNil(t, back.LastSyncedAt)
}

func TestPaymentMethodModel_KeepsDefault(t *testing.T) {
	pm, err := account.NewPaymentMethod(uuid.New(), account.PaymentMethodDetails{
		Type:        account.PaymentMethodTypeCard,
		Brand:       "visa",
		Last4:       "4242",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
	})
	require.NoError(t, err)
	pm.SetDefault(true)

	m := PaymentMethodModelFromDomain(pm)
	assert.True(t, m.IsDefault)
	assert.Equal(t, "card", m.Type)
	assert.True(t, m.ToDomain().IsDefault())
}
