package catalog_test

import (
	"context"
	"errors"
	"testing"

	"daysync/core/database"
	"daysync/core/merge"
	"daysync/feature/catalog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newLocalStore(t *testing.T) *catalog.LocalStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := catalog.NewLocalStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestLocalStore_ReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newLocalStore(t)

	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	products := []merge.Product{
		{Name: "Rice", Kcal100: 130, CreatedAt: 7},
		{Name: "Apple", Kcal100: 52, Portions: []merge.Portion{{Label: "medium", Grams: 180}}},
		{Name: "  "},
		{Name: "rice", Kcal100: 999},
	}
	require.NoError(t, store.Replace(ctx, products))

	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, products[:2], got, "stored order is kept, first name wins")

	require.NoError(t, store.Replace(ctx, []merge.Product{{Name: "Tea"}}))
	got, _, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []merge.Product{{Name: "Tea"}}, got)

	require.NoError(t, store.Replace(ctx, nil))
	_, found, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func newMockStore(t *testing.T) (*catalog.LocalStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	return catalog.NewLocalStore(db), mock
}

func TestLocalStore_MySQL(t *testing.T) {
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"name_key", "position", "created_at", "payload"}).
			AddRow("oats", 0, 0, []byte(`{"name":"Oats","kcal100":"389"}`))
		mock.ExpectQuery("SELECT \\* FROM `catalog_products` ORDER BY position").WillReturnRows(rows)

		got, found, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []merge.Product{{Name: "Oats", Kcal100: 389}}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Replace rolls back on failure", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `catalog_products`").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO `catalog_products`").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := store.Replace(ctx, []merge.Product{{Name: "Oats"}})
		assert.ErrorContains(t, err, "failed to store local catalog")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt payload", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"name_key", "position", "created_at", "payload"}).
			AddRow("oats", 0, 0, []byte(`{"name":`))
		mock.ExpectQuery("SELECT \\* FROM `catalog_products`").WillReturnRows(rows)

		_, _, err := store.Load(ctx)
		assert.ErrorContains(t, err, "corrupt local product oats")
	})
}
