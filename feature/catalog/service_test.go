package catalog_test

import (
	"context"
	"testing"

	"daysync/core/merge"
	"daysync/core/reconcile"
	"daysync/core/storage/mocks"
	"daysync/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	local   *catalog.LocalStore
	remote  *catalog.RemoteStore
	bucket  *mocks.Bucket
	service *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	local := newLocalStore(t)
	bucket := mocks.NewBucket()
	remote := catalog.NewRemoteStore(bucket, "bucket", "catalog/products.json")
	merger := merge.New()
	return &fixture{
		local:   local,
		remote:  remote,
		bucket:  bucket,
		service: catalog.NewService(merger, catalog.NewAdapter(local, remote, merger), zap.NewNop()),
	}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.local.Replace(ctx, []merge.Product{
		{Name: "Apple", Kcal100: 52},
		{Name: "Oats", Kcal100: 389},
	}))
	f.bucket.SetObject("catalog/products.json", []byte(`[
		{"id": "x", "name": "apple"},
		{"name": "Rice", "kcal100": 130, "createdAt": 100}
	]`))
}

var wantMerged = []merge.Product{
	{Name: "Apple", Kcal100: 52},
	{Name: "Rice", Kcal100: 130, CreatedAt: 100},
	{Name: "Oats", Kcal100: 389},
}

func TestService_Sync(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t)

	res, err := f.service.Sync(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, catalog.Key, res.Key)
	assert.Equal(t, reconcile.ActionWriteBoth, res.Action)
	assert.True(t, res.Applied)

	local, _, err := f.local.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantMerged, local)
	remote, _, err := f.remote.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantMerged, remote)

	again, err := f.service.Sync(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ActionNone, again.Action)
}

func TestService_SyncPushAndPull(t *testing.T) {
	ctx := context.Background()

	t.Run("Push", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.local.Replace(ctx, []merge.Product{{Name: "Tea"}}))

		res, err := f.service.Sync(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, reconcile.ActionPushRemote, res.Action)
		_, ok := f.bucket.Object("catalog/products.json")
		assert.True(t, ok)
	})

	t.Run("Pull collapses duplicates", func(t *testing.T) {
		f := newFixture(t)
		f.bucket.SetObject("catalog/products.json", []byte(`[{"name":"Tea"},{"name":"tea","kcal100":1}]`))

		res, err := f.service.Sync(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, reconcile.ActionPullLocal, res.Action)

		got, _, err := f.local.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []merge.Product{{Name: "tea", Kcal100: 1}}, got)
	})
}

func TestService_SyncDryRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t)

	res, err := f.service.Sync(ctx, true)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	require.NotNil(t, res.Value)
	assert.Equal(t, wantMerged, *res.Value)

	local, _, err := f.local.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 2)
}

func TestService_Offline(t *testing.T) {
	svc := catalog.NewService(merge.New(), nil, zap.NewNop())
	assert.False(t, svc.CanSync())

	_, err := svc.Sync(context.Background(), false)
	assert.ErrorIs(t, err, catalog.ErrSyncUnavailable)

	merged, stats := svc.Merge([]merge.Product{{Name: "A"}}, []merge.Product{{Name: "a", Kcal100: 3}})
	assert.Equal(t, []merge.Product{{Name: "a", Kcal100: 3}}, merged)
	assert.Equal(t, 1, stats.Out)
}
