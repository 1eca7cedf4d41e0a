package model

// RawTable is the first sheet (or CSV) as read: source headers and untyped text values
type RawTable struct {
	SheetName string     `json:"sheetName"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"-"`
}

// RowCount number of data rows, header excluded
func (t *RawTable) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the raw value at row i, column idx, or "" when the row is short.
func (t *RawTable) Cell(i, idx int) string {
	row := t.Rows[i]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
