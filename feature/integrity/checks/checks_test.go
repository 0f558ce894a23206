package checks_test

import (
	"context"
	"errors"
	"testing"

	"daysync/core/database"
	"daysync/core/merge"
	"daysync/core/storage/mocks"
	catalogModels "daysync/feature/catalog/models"
	"daysync/feature/day"
	dayModels "daysync/feature/day/models"
	"daysync/feature/integrity/checks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckLayout(t *testing.T) {
	ctx := context.Background()
	bucket := mocks.NewBucket()
	bucket.SetObject("days/2025-01-01.json", []byte(`{}`))
	bucket.SetObject("days/2025-01-02.json", []byte(`{}`))
	bucket.SetObject("days/notes.md", []byte(`x`))

	report, err := checks.CheckLayout(ctx, bucket, "bucket", day.NewRemoteStore(bucket, "bucket", "days/"), "catalog/products.json")
	require.NoError(t, err)
	assert.Equal(t, &checks.LayoutReport{
		Bucket:       "bucket",
		BucketExists: true,
		DayObjects:   2,
		Stray:        []string{"days/notes.md"},
	}, report)
	assert.False(t, report.OK())

	bucket.SetObject("catalog/products.json", []byte(`[]`))
	report, err = checks.CheckLayout(ctx, bucket, "bucket", day.NewRemoteStore(bucket, "bucket", "other/"), "catalog/products.json")
	require.NoError(t, err)
	assert.True(t, report.CatalogExists)
	assert.True(t, report.OK())
}

func TestCheckLayout_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)

		report, err := checks.CheckLayout(ctx, client, "bucket", day.NewRemoteStore(client, "bucket", "days/"), "c.json")
		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.False(t, report.OK())
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, errors.New("connection refused"))

		_, err := checks.CheckLayout(ctx, client, "bucket", day.NewRemoteStore(client, "bucket", "days/"), "c.json")
		assert.ErrorContains(t, err, "failed to check bucket existence")
	})
}

func TestCheckSnapshots(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	local := day.NewLocalStore(db)
	require.NoError(t, local.Migrate())
	bucket := mocks.NewBucket()
	adapter := day.NewAdapter(local, day.NewRemoteStore(bucket, "bucket", "days/"), merge.New(), "r")

	require.NoError(t, local.Put(ctx, merge.DayRecord{Date: "2025-01-01", Steps: 1}))
	require.NoError(t, db.Create(&dayModels.DayRow{Date: "2025-01-02", Payload: datatypes.JSON(`{"date":`)}).Error)
	bucket.SetObject("days/2025-01-01.json", []byte(`{"date":"2025-01-01"}`))
	bucket.SetObject("days/2025-01-03.json", []byte(`not json`))

	report, err := checks.CheckSnapshots(ctx, adapter)
	require.NoError(t, err)
	assert.Equal(t, "day", report.Adapter)
	assert.Equal(t, 2, report.Local)
	assert.Equal(t, 2, report.Remote)
	require.Len(t, report.Corrupt, 2)
	assert.Equal(t, "2025-01-02", report.Corrupt[0].Key)
	assert.Equal(t, "local", report.Corrupt[0].Side)
	assert.Equal(t, "2025-01-03", report.Corrupt[1].Key)
	assert.Equal(t, "remote", report.Corrupt[1].Side)
	assert.Contains(t, report.Corrupt[1].Error, "corrupt remote day")
}

func TestCheckSnapshots_Cancelled(t *testing.T) {
	db := openDB(t)
	local := day.NewLocalStore(db)
	require.NoError(t, local.Migrate())
	adapter := day.NewAdapter(local, day.NewRemoteStore(mocks.NewBucket(), "bucket", "days/"), merge.New(), "r")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := checks.CheckSnapshots(ctx, adapter)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckSchema(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.AutoMigrate(&dayModels.DayRow{}))
	require.NoError(t, db.Exec("CREATE TABLE catalog_products (name_key TEXT PRIMARY KEY, payload TEXT)").Error)

	report, err := checks.CheckSchema(db, dayModels.DayRow{}, catalogModels.ProductRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["day_records"].Status)
	assert.Equal(t, checks.TableReport{
		MissingColumns: []string{"position", "created_at"},
		Status:         "error",
	}, report.Tables["catalog_products"])

	_, err = checks.CheckSchema(nil)
	assert.Error(t, err)

	_, err = checks.CheckSchema(db, struct{ Name string }{})
	assert.ErrorContains(t, err, "does not implement TableName")
}
