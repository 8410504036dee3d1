package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupItemTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Item{})
	require.NoError(t, err)

	return db
}

func newPersistedItem(t *testing.T, repo *GormItemRepository, sku, name, barcode string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(sku, name, "pcs")
	require.NoError(t, err)
	item.Barcode = barcode
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestGormItemRepository_SaveAndFind(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	item := newPersistedItem(t, repo, "sku-001", "Widget", "4006381333931")

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", found.SKU)
		assert.Equal(t, "Widget", found.Name)
		assert.Equal(t, catalog.ItemStatusActive, found.Status)
	})

	t.Run("finds by sku case-insensitively", func(t *testing.T) {
		found, err := repo.FindBySKU(ctx, "sku-001")
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
	})

	t.Run("finds by barcode", func(t *testing.T) {
		found, err := repo.FindByBarcode(ctx, "4006381333931")
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
	})

	t.Run("rejects empty barcode", func(t *testing.T) {
		_, err := repo.FindByBarcode(ctx, "")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BARCODE", domainErr.Code)
	})

	t.Run("returns not found for missing item", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("persists updates", func(t *testing.T) {
		require.NoError(t, item.Update("Widget v2", "4006381333932"))
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Widget v2", found.Name)
		assert.Equal(t, "4006381333932", found.Barcode)
	})
}

func TestGormItemRepository_Queries(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	a := newPersistedItem(t, repo, "SKU-001", "Widget", "")
	b := newPersistedItem(t, repo, "SKU-002", "Gadget", "")
	newPersistedItem(t, repo, "SKU-003", "Sprocket", "")

	t.Run("finds by ids", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("empty id list yields empty result", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("lists all ordered by name", func(t *testing.T) {
		items, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Gadget", items[0].Name)
		assert.Equal(t, "Sprocket", items[1].Name)
		assert.Equal(t, "Widget", items[2].Name)
	})

	t.Run("searches by name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "gadg"

		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Gadget", items[0].Name)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.Filter{Page: 2, PageSize: 2}
		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("checks sku existence", func(t *testing.T) {
		exists, err := repo.ExistsBySKU(ctx, "sku-001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "SKU-999")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormItemRepository_Delete(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	item := newPersistedItem(t, repo, "SKU-001", "Widget", "")

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
