package catalog_test

import (
	"context"
	"testing"

	"daysync/core/merge"
	"daysync/core/storage/mocks"
	"daysync/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := mocks.NewBucket()
	store := catalog.NewRemoteStore(bucket, "bucket", "catalog/products.json")

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	products := []merge.Product{{ID: "p1", Name: "Kefir", Kcal100: 41}}
	require.NoError(t, store.Save(ctx, products))

	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, products, got)
}

func TestRemoteStore_SaveEmpty(t *testing.T) {
	bucket := mocks.NewBucket()
	store := catalog.NewRemoteStore(bucket, "bucket", "catalog/products.json")

	require.NoError(t, store.Save(context.Background(), nil))
	data, ok := bucket.Object("catalog/products.json")
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))
}

func TestRemoteStore_IgnoresSiblingObjects(t *testing.T) {
	bucket := mocks.NewBucket()
	bucket.SetObject("catalog/products.json.bak", []byte(`[]`))
	store := catalog.NewRemoteStore(bucket, "bucket", "catalog/products.json")

	ok, err := store.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoteStore_NonListObject(t *testing.T) {
	bucket := mocks.NewBucket()
	bucket.SetObject("catalog/products.json", []byte(`{"products": 3}`))
	store := catalog.NewRemoteStore(bucket, "bucket", "catalog/products.json")

	got, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}
