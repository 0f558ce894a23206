// Package storage talks to the remote replica, an S3 compatible bucket.
//
// Client is the slice of the MinIO API the feature stores need, which keeps
// them mockable (see core/storage/mocks). The helpers in objects.go add the
// replica semantics on top: a missing object is "not found" rather than an
// error, and listings skip folder markers.
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, found, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "days/2025-01-01.json")
package storage
