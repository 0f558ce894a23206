package reconcile

import (
	"context"
	"fmt"
)

// plan decides the action for one key from what each replica holds.
func plan[T any](adapter Adapter[T], local T, localFound bool, remote T, remoteFound bool) (ActionType, *T) {
	switch {
	case localFound && remoteFound:
		merged, noop := adapter.Merge(local, remote)
		if noop {
			return ActionNone, &local
		}
		return ActionWriteBoth, &merged
	case localFound:
		return ActionPushRemote, &local
	case remoteFound:
		return ActionPullLocal, &remote
	default:
		return ActionNone, nil
	}
}

// apply executes a planned action. For write_both the remote replica is written first.
func apply[T any](ctx context.Context, adapter Adapter[T], key string, action ActionType, value *T) error {
	switch action {
	case ActionPushRemote:
		if err := adapter.StoreRemote(ctx, key, *value); err != nil {
			return fmt.Errorf("failed to store remote %s: %w", key, err)
		}
	case ActionPullLocal:
		if err := adapter.StoreLocal(ctx, key, *value); err != nil {
			return fmt.Errorf("failed to store local %s: %w", key, err)
		}
	case ActionWriteBoth:
		if err := adapter.StoreRemote(ctx, key, *value); err != nil {
			return fmt.Errorf("failed to store remote %s: %w", key, err)
		}
		if err := adapter.StoreLocal(ctx, key, *value); err != nil {
			return fmt.Errorf("failed to store local %s: %w", key, err)
		}
	}
	return nil
}

// summarize counts results by replica presence and outcome.
func summarize[T any](results []ReconcileResult[T]) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Error != "":
			s.Failed++
		case r.LocalPresent && !r.RemotePresent:
			s.LocalOnly++
		case r.RemotePresent && !r.LocalPresent:
			s.RemoteOnly++
		case r.Action == ActionWriteBoth:
			s.Merged++
		case r.LocalPresent && r.RemotePresent:
			s.Unchanged++
		}
	}
	return s
}
