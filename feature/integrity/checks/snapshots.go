package checks

import (
	"context"
	"errors"

	"daysync/core/reconcile"
)

// Corrupt is a snapshot that exists but cannot be decoded.
type Corrupt struct {
	Key   string `json:"key"`
	Side  string `json:"side"`
	Error string `json:"error"`
}

// SnapshotReport lists the unreadable snapshots of one entity family.
type SnapshotReport struct {
	Adapter string    `json:"adapter"`
	Local   int       `json:"local"`
	Remote  int       `json:"remote"`
	Corrupt []Corrupt `json:"corrupt"`
}

// CheckSnapshots loads every key on both sides through the adapter. A sync of a
// corrupt key fails, so these are the keys a sweep will report as failed.
func CheckSnapshots[T any](ctx context.Context, adapter reconcile.Adapter[T]) (*SnapshotReport, error) {
	report := &SnapshotReport{Adapter: adapter.Name(), Corrupt: []Corrupt{}}

	localKeys, err := adapter.ListLocalKeys(ctx)
	if err != nil {
		return nil, err
	}
	remoteKeys, err := adapter.ListRemoteKeys(ctx)
	if err != nil {
		return nil, err
	}
	report.Local = len(localKeys)
	report.Remote = len(remoteKeys)

	for _, key := range localKeys {
		if _, _, err := adapter.LoadLocal(ctx, key); err != nil {
			if ctxErr(err) {
				return nil, err
			}
			report.Corrupt = append(report.Corrupt, Corrupt{Key: key, Side: "local", Error: err.Error()})
		}
	}
	for _, key := range remoteKeys {
		if _, _, err := adapter.LoadRemote(ctx, key); err != nil {
			if ctxErr(err) {
				return nil, err
			}
			report.Corrupt = append(report.Corrupt, Corrupt{Key: key, Side: "remote", Error: err.Error()})
		}
	}
	return report, nil
}

func ctxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
