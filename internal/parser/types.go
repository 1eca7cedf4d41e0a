package parser

import (
	"errors"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

var (
	// ErrSchemaMismatch no expected column was found, or DataCriacao is absent
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrNoValidRows every row was dropped while cleaning
	ErrNoValidRows = errors.New("no valid rows")
)

// RenameRule maps one source header to a canonical field.
// Rules are applied in ascending Priority; a source header feeds at most one field
// and a field takes the first source that reaches it.
type RenameRule struct {
	Source   string      `json:"source"`
	Target   model.Field `json:"target"`
	Priority int         `json:"priority"`
}

// ColumnMapping resolved rename
type ColumnMapping struct {
	Field       model.Field `json:"field"`
	ColumnName  string      `json:"columnName"`
	ColumnIndex int         `json:"columnIndex"`
}

// CleanReport counts what the cleaner recovered from. Nothing is reported per row.
type CleanReport struct {
	SheetName         string          `json:"sheetName"`
	RawRows           int             `json:"rawRows"`
	Rows              int             `json:"rows"`
	DroppedRows       int             `json:"droppedRows"`
	CoercedValues     int             `json:"coercedValues"`
	FilledSentinels   int             `json:"filledSentinels"`
	Mappings          []ColumnMapping `json:"mappings"`
	Missing           []model.Field   `json:"missing"`
	DerivedFranqueado bool            `json:"derivedFranqueado"`
	MonthLocale       string          `json:"monthLocale"`
}
