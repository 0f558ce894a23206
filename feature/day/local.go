package day

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"daysync/core/database"
	"daysync/core/merge"
	"daysync/feature/day/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStore keeps day snapshots in the local database.
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore wraps an open database.
func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Migrate creates or updates the day table and checks its columns.
func (s *LocalStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.DayRow{}); err != nil {
		return fmt.Errorf("failed to migrate day_records: %w", err)
	}
	return database.RequireColumns(s.db, models.DayRow{}.TableName(), models.Columns...)
}

// Keys returns every stored date in ascending order.
func (s *LocalStore) Keys(ctx context.Context) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).Model(&models.DayRow{}).Order("date").Pluck("date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list local days: %w", err)
	}
	return dates, nil
}

// Get loads the snapshot for date. found is false when the date was never stored.
func (s *LocalStore) Get(ctx context.Context, date string) (rec merge.DayRecord, found bool, err error) {
	var row models.DayRow
	err = s.db.WithContext(ctx).Where("date = ?", date).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return merge.DayRecord{}, false, nil
	}
	if err != nil {
		return merge.DayRecord{}, false, fmt.Errorf("failed to load local day %s: %w", date, err)
	}

	rec, err = merge.DecodeDayRecord(row.Payload)
	if err != nil {
		return merge.DayRecord{}, false, fmt.Errorf("corrupt local day %s: %w", date, err)
	}
	rec.Date = row.Date
	return rec, true, nil
}

// Put inserts or replaces the snapshot of rec.Date.
func (s *LocalStore) Put(ctx context.Context, rec merge.DayRecord) error {
	if !rec.Valid() {
		return ErrInvalidDate
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", rec.Date, err)
	}

	row := models.DayRow{
		Date:        rec.Date,
		UpdatedAtMs: rec.UpdatedAt,
		ReplicaID:   rec.ReplicaID,
		Payload:     datatypes.JSON(payload),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store local day %s: %w", rec.Date, err)
	}
	return nil
}
