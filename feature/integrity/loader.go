package integrity

import (
	"daysync/core/merge"
	"daysync/core/reconcile"
	"daysync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	service *Service
	handler *Handler
}

// NewFeature creates the integrity feature. It is enabled only when both replicas
// and both adapters are available.
func NewFeature(
	db *gorm.DB,
	client storage.Client,
	storageCfg storage.Config,
	syncCfg reconcile.Config,
	days reconcile.Adapter[merge.DayRecord],
	products reconcile.Adapter[[]merge.Product],
	logger *zap.Logger,
) *Feature {
	svc := NewService(db, client, storageCfg, syncCfg, days, products, logger)
	return &Feature{
		enabled: db != nil && client != nil && days != nil && products != nil,
		service: svc,
		handler: NewHandler(svc),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service to the commands.
func (f *Feature) Service() *Service {
	return f.service
}
