package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

var (
	// ErrNoSheets workbook without worksheets
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrEmptySheet sheet without a header row
	ErrEmptySheet = errors.New("sheet is empty")
)

// Parser reads a workbook into raw tables
type Parser struct {
	file *excelize.File
}

// NewParser creates a parser
func NewParser() *Parser {
	return &Parser{}
}

// LoadFile opens a workbook from a reader
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// Open opens a workbook from disk
func (p *Parser) Open(path string) error {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// GetSheets lists worksheet names in workbook order
func (p *Parser) GetSheets() ([]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}
	return p.file.GetSheetList(), nil
}

// ReadFirstSheet reads the first worksheet, the only one the dashboard uses.
func (p *Parser) ReadFirstSheet() (*model.RawTable, error) {
	sheets, err := p.GetSheets()
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return p.ReadSheet(sheets[0])
}

// ReadSheet reads one sheet. The first row is the header; cells are raw values,
// so dates come back as Excel serial numbers unless they were typed as text.
// Rows are padded to the header width and fully blank rows are skipped.
func (p *Parser) ReadSheet(sheet string) (*model.RawTable, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &model.RawTable{
		SheetName: sheet,
		Headers:   headers,
		Rows:      make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Close closes the workbook
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
