package integrity

import (
	"context"

	"daysync/core/merge"
	"daysync/core/reconcile"
	"daysync/core/storage"
	catalogModels "daysync/feature/catalog/models"
	"daysync/feature/day"
	dayModels "daysync/feature/day/models"
	"daysync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs the replica checks.
type Service struct {
	client        storage.Client
	storageCfg    storage.Config
	catalogObject string
	dayObjects    *day.RemoteStore
	db            *gorm.DB
	days          reconcile.Adapter[merge.DayRecord]
	products      reconcile.Adapter[[]merge.Product]
	logger        *zap.Logger
}

// NewService creates a new integrity service.
func NewService(
	db *gorm.DB,
	client storage.Client,
	storageCfg storage.Config,
	syncCfg reconcile.Config,
	days reconcile.Adapter[merge.DayRecord],
	products reconcile.Adapter[[]merge.Product],
	logger *zap.Logger,
) *Service {
	return &Service{
		client:        client,
		storageCfg:    storageCfg,
		catalogObject: syncCfg.CatalogObject,
		dayObjects:    day.NewRemoteStore(client, storageCfg.Bucket, syncCfg.DayPrefix),
		db:            db,
		days:          days,
		products:      products,
		logger:        logger,
	}
}

// CheckLayout reports on the bucket and the objects in it.
func (s *Service) CheckLayout(ctx context.Context) (*checks.LayoutReport, error) {
	return checks.CheckLayout(ctx, s.client, s.storageCfg.Bucket, s.dayObjects, s.catalogObject)
}

// FixLayout creates the bucket when it is missing.
func (s *Service) FixLayout(ctx context.Context) error {
	if err := storage.EnsureBucket(ctx, s.client, s.storageCfg, true); err != nil {
		return err
	}
	s.logger.Info("Bucket ensured", zap.String("bucket", s.storageCfg.Bucket))
	return nil
}

// CheckSnapshots reports the unreadable snapshots of every family.
func (s *Service) CheckSnapshots(ctx context.Context) ([]*checks.SnapshotReport, error) {
	days, err := checks.CheckSnapshots(ctx, s.days)
	if err != nil {
		return nil, err
	}
	products, err := checks.CheckSnapshots(ctx, s.products)
	if err != nil {
		return nil, err
	}
	return []*checks.SnapshotReport{days, products}, nil
}

// CheckSchema compares the local tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, dayModels.DayRow{}, catalogModels.ProductRow{})
}
