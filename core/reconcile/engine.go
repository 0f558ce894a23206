package reconcile

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReconcileOne syncs a single key. It holds the key's lock from the first load
// until both writes are done, so two syncs of one key never interleave.
func ReconcileOne[T any](ctx context.Context, job *Job[T], key string) (ReconcileResult[T], error) {
	adapter := job.Adapter
	result := ReconcileResult[T]{Key: key, Action: ActionNone}

	unlock, err := globalLocks.acquire(ctx, lockKey(adapter.Name(), key))
	if err != nil {
		return result, err
	}
	defer unlock()

	local, localFound, err := adapter.LoadLocal(ctx, key)
	if err != nil {
		return result, fmt.Errorf("failed to load local %s: %w", key, err)
	}
	remote, remoteFound, err := adapter.LoadRemote(ctx, key)
	if err != nil {
		return result, fmt.Errorf("failed to load remote %s: %w", key, err)
	}
	result.LocalPresent = localFound
	result.RemotePresent = remoteFound

	action, value := plan(adapter, local, localFound, remote, remoteFound)
	result.Action = action
	result.Value = value

	if action != ActionNone && !job.Options.DryRun {
		if err := apply(ctx, adapter, key, action, value); err != nil {
			return result, err
		}
		result.Applied = true
	}

	job.logger().Debug("key reconciled",
		zap.String("adapter", adapter.Name()),
		zap.String("key", key),
		zap.String("action", string(action)),
		zap.Bool("applied", result.Applied),
	)
	return result, nil
}

// ReconcileAll syncs every key either replica holds. A failing key is recorded in
// its result and does not stop the sweep; listing failures and cancellation do.
// Concurrent sweeps of the same family with the same options share one run. The
// shared run is detached from any single caller: a caller whose ctx ends stops
// waiting, while the run completes for everyone else.
func ReconcileAll[T any](ctx context.Context, job *Job[T]) (*ReconcileReport[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sweepKey := fmt.Sprintf("%s|dry=%t", job.Adapter.Name(), job.Options.DryRun)
	runCtx := context.WithoutCancel(ctx)
	ch := globalSweeps.DoChan(sweepKey, func() (any, error) {
		return sweep(runCtx, job)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ReconcileReport[T]), nil
	}
}

func sweep[T any](ctx context.Context, job *Job[T]) (*ReconcileReport[T], error) {
	adapter := job.Adapter

	var localKeys, remoteKeys []string
	lg, lctx := errgroup.WithContext(ctx)
	lg.Go(func() (err error) {
		localKeys, err = adapter.ListLocalKeys(lctx)
		if err != nil {
			return fmt.Errorf("failed to list local keys: %w", err)
		}
		return nil
	})
	lg.Go(func() (err error) {
		remoteKeys, err = adapter.ListRemoteKeys(lctx)
		if err != nil {
			return fmt.Errorf("failed to list remote keys: %w", err)
		}
		return nil
	})
	if err := lg.Wait(); err != nil {
		return nil, err
	}

	keys := buildUnion(localKeys, remoteKeys)
	results := make([]ReconcileResult[T], len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(job.concurrency())
	for i, key := range keys {
		g.Go(func() error {
			res, err := ReconcileOne(gctx, job, key)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				res.Error = err.Error()
				job.logger().Warn("key sync failed",
					zap.String("adapter", adapter.Name()),
					zap.String("key", key),
					zap.Error(err),
				)
			}
			res.Value = nil
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &ReconcileReport[T]{
		Adapter: adapter.Name(),
		DryRun:  job.Options.DryRun,
		Results: results,
		Summary: summarize(results),
	}
	job.logger().Info("sweep finished",
		zap.String("adapter", adapter.Name()),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("total", report.Summary.Total),
		zap.Int("merged", report.Summary.Merged),
		zap.Int("failed", report.Summary.Failed),
	)
	return report, nil
}

// buildUnion returns the sorted, de-duplicated keys of both replicas.
func buildUnion(local, remote []string) []string {
	union := make(map[string]struct{}, len(local)+len(remote))
	for _, k := range local {
		union[k] = struct{}{}
	}
	for _, k := range remote {
		union[k] = struct{}{}
	}

	keys := make([]string, 0, len(union))
	for k := range union {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
