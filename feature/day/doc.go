// Package day syncs per-date activity records between the local database and the
// remote bucket.
//
// The local replica is the day_records table, one row per date with the record
// as a JSON payload. The remote replica is one JSON object per date under the
// configured prefix. Adapter plugs both into core/reconcile with
// merge.Merger.MergeDay as the merge function.
//
// # Endpoints
//
//   - POST /days/merge: body {"local": {...}, "remote": {...}}; 200 with the
//     merged record, or 204 when the snapshots already agree. Both sides
//     need the same valid date, otherwise 400.
//   - POST /days/:date/sync: sync one date.
//   - POST /days/sync: sync every date either replica holds.
//
// Both sync endpoints accept ?dry_run=true.
package day
