package day

import (
	"context"

	"daysync/core/merge"
	"daysync/core/reconcile"
)

// Adapter syncs day snapshots between the local database and the bucket.
type Adapter struct {
	local   *LocalStore
	remote  *RemoteStore
	merger  *merge.Merger
	replica string
}

var _ reconcile.Adapter[merge.DayRecord] = (*Adapter)(nil)

// NewAdapter binds both stores to the merger. Merged snapshots are stamped with replica.
func NewAdapter(local *LocalStore, remote *RemoteStore, merger *merge.Merger, replica string) *Adapter {
	return &Adapter{local: local, remote: remote, merger: merger, replica: replica}
}

func (a *Adapter) Name() string { return "day" }

func (a *Adapter) ListLocalKeys(ctx context.Context) ([]string, error) {
	return a.local.Keys(ctx)
}

func (a *Adapter) ListRemoteKeys(ctx context.Context) ([]string, error) {
	return a.remote.Keys(ctx)
}

func (a *Adapter) LoadLocal(ctx context.Context, date string) (merge.DayRecord, bool, error) {
	return a.local.Get(ctx, date)
}

func (a *Adapter) LoadRemote(ctx context.Context, date string) (merge.DayRecord, bool, error) {
	return a.remote.Get(ctx, date)
}

// Merge runs the record merge. A changed result carries this process's replica id.
func (a *Adapter) Merge(local, remote merge.DayRecord) (merge.DayRecord, bool) {
	res := a.merger.MergeDay(local, remote)
	if !res.NoOp && a.replica != "" {
		res.Record.ReplicaID = a.replica
	}
	return res.Record, res.NoOp
}

// StoreLocal writes rec under date, whatever date the record itself carries.
func (a *Adapter) StoreLocal(ctx context.Context, date string, rec merge.DayRecord) error {
	rec.Date = date
	return a.local.Put(ctx, rec)
}

func (a *Adapter) StoreRemote(ctx context.Context, date string, rec merge.DayRecord) error {
	rec.Date = date
	return a.remote.Put(ctx, rec)
}
