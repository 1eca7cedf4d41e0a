package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// FilteredSheetName sheet holding the exported subset
const FilteredSheetName = "DadosFiltrados"

// CSVSeparator used by the delimited export
const CSVSeparator = ';'

// Exporter writes a dataset to a single-sheet workbook
type Exporter struct{}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the workbook with one row per record, columns in schema order.
func (e *Exporter) Export(ds *model.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", FilteredSheetName); err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(FilteredSheetName)
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return nil, err
	}

	columns := ds.Columns
	if len(columns) > 0 {
		if err := sw.SetColWidth(1, len(columns), 18); err != nil {
			return nil, err
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: string(c)}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i := range ds.Records {
		rec := &ds.Records[i]
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			if c == model.FieldDataCriacao {
				row[j] = excelize.Cell{StyleID: dateStyle, Value: rec.DataCriacao}
				continue
			}
			row[j] = rec.Cell(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteXLSX exports ds and writes the workbook to w
func (e *Exporter) WriteXLSX(w io.Writer, ds *model.Dataset) error {
	f, err := e.Export(ds)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// WriteCSV writes ds as ';'-separated text encoded as UTF-8 with a byte order mark.
func WriteCSV(w io.Writer, ds *model.Dataset) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.Comma = CSVSeparator

	header := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(ds.Columns))
	for i := range ds.Records {
		for j, c := range ds.Columns {
			row[j] = ds.Records[i].Text(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}
