package catalog_test

import (
	"testing"

	"daysync/core/database"
	"daysync/core/merge"
	"daysync/core/storage/mocks"
	"daysync/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	feature := catalog.NewFeature(db, mocks.NewBucket(), "bucket", "catalog/products.json", merge.New(), zap.NewNop())

	assert.Equal(t, "catalog", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.True(t, feature.Service().CanSync())
	require.NoError(t, feature.Load(fiber.New()))
	assert.NoError(t, database.RequireColumns(db, "catalog_products", "name_key", "position", "payload"))
}

func TestLoader_WithoutStores(t *testing.T) {
	feature := catalog.NewFeature(nil, nil, "", "", merge.New(), zap.NewNop())

	assert.False(t, feature.Service().CanSync())
	assert.NoError(t, feature.Load(fiber.New()))
}
