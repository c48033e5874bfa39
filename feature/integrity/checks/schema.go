package checks

import (
	"fmt"
	"sort"
	"strings"

	"media-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing a model against its live table.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists what one table is missing.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies that every column of every model exists in the
// database. Models are the source of truth; extra table columns are fine.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		actualCols, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		actual := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = col
		}

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		if len(actual) == 0 {
			tbl.Status = "missing"
			report.Matched = false
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}

			col, ok := actual[strings.ToLower(field.DBName)]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
				if tbl.Status == "ok" {
					tbl.Status = "error"
				}
				report.Matched = false
				continue
			}

			// Only explicit type tags are compared, loosely.
			if expected := strings.ToLower(field.TagSettings["TYPE"]); expected != "" && !strings.Contains(col.Type, expected) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", field.DBName, expected, col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}

		sort.Strings(tbl.MissingColumns)
		report.Tables[table] = tbl
	}

	return report, nil
}
