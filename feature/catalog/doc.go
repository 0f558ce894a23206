// Package catalog syncs the user's product catalog between the local database and
// the remote bucket.
//
// Products are identified by their case-folded, trimmed name. The local replica
// stores one row per product; the remote replica is a single JSON array object.
// Both sides go through merge.Merger.MergeProducts, which keeps the more complete
// entry when a name exists on both.
//
// # Endpoints
//
//   - POST /catalog/merge: body {"local": [...], "remote": [...]}; returns the
//     merged list and merge statistics.
//   - POST /catalog/sync: sync the catalog, ?dry_run=true to plan only.
package catalog
