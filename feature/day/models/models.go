package models

import "gorm.io/datatypes"

// DayRow is one day snapshot in the local replica.
// UpdatedAtMs and ReplicaID mirror the payload for listing without decoding it.
type DayRow struct {
	Date        string         `gorm:"column:date;primaryKey;size:10"`
	UpdatedAtMs int64          `gorm:"column:updated_at"`
	ReplicaID   string         `gorm:"column:replica_id;size:64"`
	Payload     datatypes.JSON `gorm:"column:payload"`
}

// TableName overrides the table name.
func (DayRow) TableName() string {
	return "day_records"
}

// Columns lists the columns the store relies on.
var Columns = []string{"date", "updated_at", "replica_id", "payload"}
