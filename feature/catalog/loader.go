package catalog

import (
	"daysync/core/merge"
	"daysync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the catalog feature. Without db and client only /catalog/merge works.
func NewFeature(db *gorm.DB, client storage.Client, bucket, object string, merger *merge.Merger, logger *zap.Logger) *Feature {
	var adapter *Adapter
	if db != nil && client != nil {
		adapter = NewAdapter(NewLocalStore(db), NewRemoteStore(client, bucket, object), merger)
	}
	svc := NewService(merger, adapter, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the local table when sync is available and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.service.CanSync() {
		if err := f.service.adapter.local.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service to the commands.
func (f *Feature) Service() *Service {
	return f.service
}
