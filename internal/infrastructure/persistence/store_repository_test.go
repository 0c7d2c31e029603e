package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/catalog"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormStoreRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing store", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		tenantID, storeID := uuid.New(), uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "created_at", "updated_at", "version", "brand_name", "external_store_id", "last_sync_status"}).
			AddRow(storeID, tenantID, now, now, 3, "Zara Gran Via", "1234", "success")

		// scopes are applied after explicit conditions
		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 AND tenant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, tenantID, 1).
			WillReturnRows(rows)

		store, err := repo.FindByIDForTenant(context.Background(), tenantID, storeID)
		require.NoError(t, err)
		assert.Equal(t, "Zara", store.BrandTag())
		assert.Equal(t, catalog.SyncStatusSuccess, store.LastSyncStatus)
		assert.Equal(t, 3, store.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "stores"`).WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStoreRepository_UpdateSyncStatus(t *testing.T) {
	t.Run("bumps version and status", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		mock.ExpectExec(`UPDATE "stores" SET .*"last_sync_status"=.*"version"=version \+ 1.* WHERE id = .* AND tenant_id = .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateSyncStatus(context.Background(), uuid.New(), uuid.New(), catalog.SyncStatusPartial, time.Now())
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		mock.ExpectExec(`UPDATE "stores"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSyncStatus(context.Background(), uuid.New(), uuid.New(), catalog.SyncStatusFailed, time.Now())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStoreRepository_FindLinked(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	linked, err := catalog.NewStoreRecord(uuid.New(), "Zara Gran Via", "1234")
	require.NoError(t, err)
	unlinked, err := catalog.NewStoreRecord(uuid.New(), "Mango Sol", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, linked))
	require.NoError(t, repo.Save(ctx, unlinked))

	stores, err := repo.FindLinked(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, linked.ID, stores[0].ID)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateSyncStatus(ctx, linked.TenantID, linked.ID, catalog.SyncStatusSuccess, at))
	got, err := repo.FindByIDForTenant(ctx, linked.TenantID, linked.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.SyncStatusSuccess, got.LastSyncStatus)
	assert.Equal(t, 2, got.Version)
}
