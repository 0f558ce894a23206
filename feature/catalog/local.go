package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"daysync/core/database"
	"daysync/core/merge"
	"daysync/feature/catalog/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LocalStore keeps the product catalog in the local database, one row per product.
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore wraps an open database.
func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Migrate creates or updates the catalog table and checks its columns.
func (s *LocalStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.ProductRow{}); err != nil {
		return fmt.Errorf("failed to migrate catalog_products: %w", err)
	}
	return database.RequireColumns(s.db, models.ProductRow{}.TableName(), models.Columns...)
}

// Load returns the catalog in stored order. found is false when it is empty.
func (s *LocalStore) Load(ctx context.Context) (products []merge.Product, found bool, err error) {
	var rows []models.ProductRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load local catalog: %w", err)
	}

	products = make([]merge.Product, 0, len(rows))
	for _, row := range rows {
		var p merge.Product
		if err := json.Unmarshal(row.Payload, &p); err != nil {
			return nil, false, fmt.Errorf("corrupt local product %s: %w", row.NameKey, err)
		}
		products = append(products, p)
	}
	return products, len(products) > 0, nil
}

// Replace swaps the whole catalog in one transaction. Unnamed products and
// repeated names after the first are skipped.
func (s *LocalStore) Replace(ctx context.Context, products []merge.Product) error {
	rows := make([]models.ProductRow, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		key := merge.NormalizeName(p.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode product %s: %w", key, err)
		}
		rows = append(rows, models.ProductRow{
			NameKey:     key,
			Position:    len(rows),
			CreatedAtMs: p.CreatedAt,
			Payload:     datatypes.JSON(payload),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store local catalog: %w", err)
	}
	return nil
}
