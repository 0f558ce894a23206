package reconcile

import "context"

// Adapter binds one entity family to its two replicas and its merge function.
type Adapter[T any] interface {
	// Name identifies the family, e.g. "day". It scopes the per-key locks.
	Name() string

	// ListLocalKeys and ListRemoteKeys return every key held by a replica.
	ListLocalKeys(ctx context.Context) ([]string, error)
	ListRemoteKeys(ctx context.Context) ([]string, error)

	// LoadLocal and LoadRemote fetch one snapshot. found is false when the replica
	// has never seen the key; that is not an error.
	LoadLocal(ctx context.Context, key string) (value T, found bool, err error)
	LoadRemote(ctx context.Context, key string) (value T, found bool, err error)

	// Merge reconciles two snapshots of the same key. noop reports that they
	// already agree and nothing needs writing.
	Merge(local, remote T) (merged T, noop bool)

	StoreLocal(ctx context.Context, key string, value T) error
	StoreRemote(ctx context.Context, key string, value T) error
}
