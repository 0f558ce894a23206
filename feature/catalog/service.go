package catalog

import (
	"context"
	"errors"

	"daysync/core/merge"
	"daysync/core/reconcile"

	"go.uber.org/zap"
)

// ErrSyncUnavailable is returned when no replica stores are configured.
var ErrSyncUnavailable = errors.New("catalog sync is not configured")

// Service merges and syncs product catalogs.
type Service struct {
	merger  *merge.Merger
	adapter *Adapter
	logger  *zap.Logger
}

// NewService creates a catalog service. adapter may be nil, in which case only
// in-memory merges are available.
func NewService(merger *merge.Merger, adapter *Adapter, logger *zap.Logger) *Service {
	return &Service{merger: merger, adapter: adapter, logger: logger}
}

// Merge unions two catalogs without touching any store.
func (s *Service) Merge(local, remote []merge.Product) ([]merge.Product, merge.CatalogStats) {
	return s.merger.MergeProducts(local, remote)
}

// Adapter returns the sync adapter, or nil when sync is unavailable.
func (s *Service) Adapter() reconcile.Adapter[[]merge.Product] {
	if s.adapter == nil {
		return nil
	}
	return s.adapter
}

// CanSync reports whether both replica stores are configured.
func (s *Service) CanSync() bool {
	return s.adapter != nil
}

// Sync reconciles the catalog across the replicas.
func (s *Service) Sync(ctx context.Context, dryRun bool) (reconcile.ReconcileResult[[]merge.Product], error) {
	if !s.CanSync() {
		return reconcile.ReconcileResult[[]merge.Product]{Key: Key}, ErrSyncUnavailable
	}
	job := &reconcile.Job[[]merge.Product]{
		Adapter:     s.adapter,
		Concurrency: 1,
		Options:     reconcile.ReconcileOptions{DryRun: dryRun},
		Logger:      s.logger,
	}
	return reconcile.ReconcileOne(ctx, job, Key)
}
