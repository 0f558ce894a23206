// Package merge reconciles two independently edited snapshots of the same record,
// one from the local replica and one from the remote replica, after the client was
// offline.
//
// The package is pure: no I/O, no shared state, no errors. Every function is total
// over its inputs and safe to call repeatedly and out of order.
//
// # Components
//
//   - Field merging: Resolve applies one Policy per attribute (last-writer-wins,
//     monotonic max, null-as-clear); ResolveOverride handles the manually pinned
//     day score; ResolveCounter handles cumulative totals.
//   - MergeTrainings: three fixed slots; an empty slot never overwrites recorded
//     minutes, ratings survive from the losing side.
//   - MergeMeals: keyed union by meal id with deletion inference from recency.
//   - MergeDay: the entry point for a day; returns a DayResult with NoOp set when
//     the snapshots differ only in volatile fields.
//   - MergeProducts: catalog union by normalized name with quality scoring.
//
// # Absent versus null
//
// Field[T] keeps "the replica has no opinion" (Absent) apart from "the replica
// cleared this" (Null). Only clearable attributes honor Null; elsewhere it reads
// as Absent.
//
// # Concurrency
//
// Merges are pairwise. The training slot rule is not associative across three or
// more concurrent replicas, so callers must run at most one merge per key at a time
// and persist each result before merging the next snapshot for that key. The
// reconcile package provides that discipline.
//
// # Usage
//
//	m := merge.New(merge.WithLogger(log))
//	res := m.MergeDay(local, remote)
//	if !res.NoOp {
//	    save(res.Record)
//	}
package merge
