package day

import (
	"context"
	"errors"
	"time"

	"daysync/core/merge"
	"daysync/core/reconcile"

	"go.uber.org/zap"
)

var (
	// ErrInvalidDate is returned for keys that are not YYYY-MM-DD dates.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrSyncUnavailable is returned when no replica stores are configured.
	ErrSyncUnavailable = errors.New("day sync is not configured")
)

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// Service merges and syncs day snapshots.
type Service struct {
	merger      *merge.Merger
	adapter     *Adapter
	concurrency int
	logger      *zap.Logger
}

// NewService creates a day service. adapter may be nil, in which case only
// in-memory merges are available.
func NewService(merger *merge.Merger, adapter *Adapter, concurrency int, logger *zap.Logger) *Service {
	return &Service{
		merger:      merger,
		adapter:     adapter,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Merge reconciles two snapshots without touching any store.
func (s *Service) Merge(local, remote merge.DayRecord) merge.DayResult {
	return s.merger.MergeDay(local, remote)
}

// Adapter returns the sync adapter, or nil when sync is unavailable.
func (s *Service) Adapter() reconcile.Adapter[merge.DayRecord] {
	if s.adapter == nil {
		return nil
	}
	return s.adapter
}

// CanSync reports whether both replica stores are configured.
func (s *Service) CanSync() bool {
	return s.adapter != nil
}

// Sync reconciles one date across the replicas.
func (s *Service) Sync(ctx context.Context, date string, dryRun bool) (reconcile.ReconcileResult[merge.DayRecord], error) {
	if !ValidDate(date) {
		return reconcile.ReconcileResult[merge.DayRecord]{Key: date}, ErrInvalidDate
	}
	if !s.CanSync() {
		return reconcile.ReconcileResult[merge.DayRecord]{Key: date}, ErrSyncUnavailable
	}
	return reconcile.ReconcileOne(ctx, s.job(dryRun), date)
}

// SyncAll reconciles every date either replica holds.
func (s *Service) SyncAll(ctx context.Context, dryRun bool) (*reconcile.ReconcileReport[merge.DayRecord], error) {
	if !s.CanSync() {
		return nil, ErrSyncUnavailable
	}
	return reconcile.ReconcileAll(ctx, s.job(dryRun))
}

func (s *Service) job(dryRun bool) *reconcile.Job[merge.DayRecord] {
	return &reconcile.Job[merge.DayRecord]{
		Adapter:     s.adapter,
		Concurrency: s.concurrency,
		Options:     reconcile.ReconcileOptions{DryRun: dryRun},
		Logger:      s.logger,
	}
}
