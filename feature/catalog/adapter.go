package catalog

import (
	"context"

	"daysync/core/merge"
	"daysync/core/reconcile"
)

// Key is the only key of the catalog family.
const Key = "catalog"

// Adapter syncs the product catalog between the local database and the bucket.
type Adapter struct {
	local  *LocalStore
	remote *RemoteStore
	merger *merge.Merger
}

var _ reconcile.Adapter[[]merge.Product] = (*Adapter)(nil)

// NewAdapter binds both stores to the merger.
func NewAdapter(local *LocalStore, remote *RemoteStore, merger *merge.Merger) *Adapter {
	return &Adapter{local: local, remote: remote, merger: merger}
}

func (a *Adapter) Name() string { return "catalog" }

func (a *Adapter) ListLocalKeys(ctx context.Context) ([]string, error) {
	_, found, err := a.local.Load(ctx)
	if err != nil || !found {
		return nil, err
	}
	return []string{Key}, nil
}

func (a *Adapter) ListRemoteKeys(ctx context.Context) ([]string, error) {
	ok, err := a.remote.Exists(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return []string{Key}, nil
}

func (a *Adapter) LoadLocal(ctx context.Context, _ string) ([]merge.Product, bool, error) {
	return a.local.Load(ctx)
}

func (a *Adapter) LoadRemote(ctx context.Context, _ string) ([]merge.Product, bool, error) {
	return a.remote.Load(ctx)
}

// Merge is a no-op only when both catalogs already equal the merged one.
func (a *Adapter) Merge(local, remote []merge.Product) ([]merge.Product, bool) {
	merged, _ := a.merger.MergeProducts(local, remote)
	return merged, merge.SameCatalog(merged, local) && merge.SameCatalog(merged, remote)
}

// StoreLocal collapses duplicate names before writing, since the table is keyed by name.
func (a *Adapter) StoreLocal(ctx context.Context, _ string, products []merge.Product) error {
	deduped, _ := a.merger.MergeProducts(products, nil)
	return a.local.Replace(ctx, deduped)
}

func (a *Adapter) StoreRemote(ctx context.Context, _ string, products []merge.Product) error {
	return a.remote.Save(ctx, products)
}
