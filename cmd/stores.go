package cmd

import (
	"context"
	"fmt"
	"time"

	"daysync/core/config"
	"daysync/core/database"
	"daysync/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openDatabase connects the local replica.
func openDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	l.Info("Connected to local database", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// openStorage connects the remote replica and makes sure its bucket exists.
func openStorage(ctx context.Context, cfg *config.Config, l *zap.Logger) (storage.Client, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(max(cfg.Storage.TimeoutSeconds, 1)) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, cfg.Storage, cfg.Storage.CreateBucket); err != nil {
		return nil, fmt.Errorf("storage not ready: %w", err)
	}
	l.Info("Connected to remote storage",
		zap.String("endpoint", cfg.Storage.Endpoint),
		zap.String("bucket", cfg.Storage.Bucket),
	)
	return client, nil
}
