package relational

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/platform/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(db))
	return db
}

func mustStore(t *testing.T, repo *StoreRepository, id, name string) *domain.Store {
	t.Helper()
	store, err := domain.NewStore(id, name)
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), store)
	require.NoError(t, err)
	return saved
}

func mustItem(t *testing.T, repo *ItemRepository, id, name string, price float64, storeID string) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(id, name, price, storeID)
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	return saved
}
