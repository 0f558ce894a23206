package checks

import (
	"fmt"
	"reflect"
	"strings"

	"daysync/core/database"

	"gorm.io/gorm"
)

// SchemaReport compares the local tables with the gorm models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every column declared on the models exists.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		t := reflect.TypeOf(model)
		tabler, ok := model.(interface{ TableName() string })
		if t.Kind() != reflect.Struct || !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		table := tabler.TableName()

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		have := make(map[string]bool, len(actual))
		for _, col := range actual {
			have[col.Field] = true
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		for i := range t.NumField() {
			col := parseGormColumn(t.Field(i).Tag.Get("gorm"))
			if col == "" || have[col] {
				continue
			}
			tbl.MissingColumns = append(tbl.MissingColumns, col)
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}
	return report, nil
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
