package models

import "gorm.io/datatypes"

// ProductRow is one product of the local catalog. Position keeps the list order.
type ProductRow struct {
	NameKey     string         `gorm:"column:name_key;primaryKey;size:191"`
	Position    int            `gorm:"column:position;index"`
	CreatedAtMs int64          `gorm:"column:created_at"`
	Payload     datatypes.JSON `gorm:"column:payload"`
}

// TableName overrides the table name.
func (ProductRow) TableName() string {
	return "catalog_products"
}

// Columns lists the columns the store relies on.
var Columns = []string{"name_key", "position", "created_at", "payload"}
