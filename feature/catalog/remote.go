package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"daysync/core/merge"
	"daysync/core/storage"
)

// RemoteStore keeps the product catalog as a single JSON array object.
type RemoteStore struct {
	client storage.Client
	bucket string
	object string
}

// NewRemoteStore creates a store for the catalog object.
func NewRemoteStore(client storage.Client, bucket, object string) *RemoteStore {
	return &RemoteStore{client: client, bucket: bucket, object: object}
}

// Exists reports whether the catalog object is present.
func (s *RemoteStore) Exists(ctx context.Context) (bool, error) {
	names, err := storage.ListNames(ctx, s.client, s.bucket, s.object)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, s.object), nil
}

// Load downloads the catalog. found is false when the object does not exist.
func (s *RemoteStore) Load(ctx context.Context) (products []merge.Product, found bool, err error) {
	data, found, err := storage.ReadObject(ctx, s.client, s.bucket, s.object)
	if err != nil || !found {
		return nil, false, err
	}
	products, err = merge.DecodeProducts(data)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt remote catalog: %w", err)
	}
	return products, true, nil
}

// Save uploads the catalog.
func (s *RemoteStore) Save(ctx context.Context, products []merge.Product) error {
	if products == nil {
		products = []merge.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return storage.WriteObject(ctx, s.client, s.bucket, s.object, data)
}
