package cmd

import (
	"daysync/core/config"
	"daysync/core/loader"
	"daysync/core/logger"
	"daysync/core/merge"
	"daysync/core/middleware/auth"
	"daysync/core/middleware/rayid"
	"daysync/core/storage"
	"daysync/feature/catalog"
	"daysync/feature/day"
	"daysync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newServer builds the HTTP app. db and client may be nil; the sync routes then
// answer 503 while the merge routes keep working.
func newServer(cfg *config.Config, logg *zap.Logger, db *gorm.DB, client storage.Client) (*fiber.App, error) {
	if db == nil || client == nil {
		db, client = nil, nil
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	merger := merge.New(merge.WithLogger(logg.Named("merge")))
	replica := cfg.Server.Replica()

	days := day.NewFeature(db, client, cfg.Storage.Bucket, cfg.Sync, merger, replica, logg)
	products := catalog.NewFeature(db, client, cfg.Storage.Bucket, cfg.Sync.CatalogObject, merger, logg)

	mgr := loader.NewManager()
	mgr.Register(days)
	mgr.Register(products)
	mgr.Register(integrity.NewFeature(db, client, cfg.Storage, cfg.Sync,
		days.Service().Adapter(), products.Service().Adapter(), logg))

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{
		ApiKey: cfg.Server.ApiKey,
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}

	syncEnabled := db != nil
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"replica":  replica,
			"features": loaded,
			"sync":     syncEnabled,
		})
	})

	logg.Info("Features loaded", zap.Strings("features", loaded), zap.Bool("sync", syncEnabled))
	return app, nil
}
