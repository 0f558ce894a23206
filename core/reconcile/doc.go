// Package reconcile syncs two replicas of keyed snapshots through an entity
// specific merge function.
//
// An Adapter lists and loads keys on the local and the remote replica, merges two
// snapshots and stores the outcome. The engine decides one action per key:
//
//   - only local holds it: push_remote
//   - only remote holds it: pull_local
//   - both hold it and the merge is a no-op: none
//   - both hold it and the merge changed something: write_both
//
// ReconcileOne holds a per-key lock for the whole load, merge and store sequence,
// so at most one merge per key is in flight in the process. ReconcileAll sweeps
// the union of both key sets with bounded parallelism; keys are independent, so
// one failing key is reported and the rest continue.
//
//	job := &reconcile.Job[merge.DayRecord]{Adapter: adapter, Concurrency: 4}
//	report, err := reconcile.ReconcileAll(ctx, job)
package reconcile
