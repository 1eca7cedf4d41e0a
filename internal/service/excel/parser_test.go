package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
	"github.com/willfaleixo/Dashboards-BI/internal/service/excel"
)

func buildOrdersWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	header := []interface{}{"Order Creation Date: Date", "STATUS", "Orders - TOTAL Orders Qty", "Canal"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("SetSheetRow header failed: %v", err)
	}
	if err := wb.SetCellValue(sheet, "A2", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if err := wb.SetCellValue(sheet, "B2", "Faturado"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	// short row: only the date and status
	row3 := []interface{}{"10/04/2024", "Cancelado"}
	if err := wb.SetSheetRow(sheet, "A3", &row3); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return &buf
}

func TestReadFirstSheet(t *testing.T) {
	t.Parallel()

	p := excel.NewParser()
	if err := p.LoadFile(buildOrdersWorkbook(t)); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defer p.Close()

	table, err := p.ReadFirstSheet()
	if err != nil {
		t.Fatalf("ReadFirstSheet failed: %v", err)
	}
	if len(table.Headers) != 4 || table.Headers[3] != "Canal" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if table.RowCount() != 2 {
		t.Fatalf("want 2 rows, got %d", table.RowCount())
	}
	if got := table.Cell(0, 0); got != "45366" {
		t.Fatalf("date cell should be the raw serial, got %q", got)
	}
	if len(table.Rows[1]) != 4 || table.Cell(1, 3) != "" {
		t.Fatalf("short row must be padded: %v", table.Rows[1])
	}
}

func TestReadFirstSheet_Empty(t *testing.T) {
	t.Parallel()

	wb := excelize.NewFile()
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	p := excel.NewParser()
	if err := p.LoadFile(&buf); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, err := p.ReadFirstSheet(); !errors.Is(err, excel.ErrEmptySheet) {
		t.Fatalf("want ErrEmptySheet, got %v", err)
	}
}

func sampleDataset() *model.Dataset {
	return model.NewDataset([]model.Record{
		{
			DataCriacao: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), Ano: 2024, MesNumero: 3, MesNome: "Março", SemanaAno: 11,
			NumPedido: "1001", StatusKPI: "Faturado", QuantidadeKPI: 3, ValorFaturadoKPI: decimal.RequireFromString("10.5"),
			CanalBI: "Loja; Centro",
		},
	}, []model.Field{
		model.FieldDataCriacao, model.FieldAno, model.FieldMesNumero, model.FieldMesNome, model.FieldSemanaAno,
		model.FieldNumPedido, model.FieldStatusKPI, model.FieldQuantidadeKPI, model.FieldValorFaturadoKPI, model.FieldCanalBI,
	}, nil)
}

func TestExport_SingleSheet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := excel.NewExporter().WriteXLSX(&buf, sampleDataset()); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 1 || sheets[0] != excel.FilteredSheetName {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	rows, err := wb.GetRows(excel.FilteredSheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != "DataCriacao" || rows[1][5] != "1001" || rows[1][9] != "Loja; Centro" {
		t.Fatalf("unexpected content: %v", rows)
	}
}

func TestWriteCSV_BOMAndSeparator(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := excel.WriteCSV(&buf, sampleDataset()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("missing UTF-8 BOM: % x", out[:3])
	}
	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "DataCriacao;Ano;MesNumero;MesNome") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2024-03-15 09:00:00;2024;3;Março;11;1001;Faturado;3;10.5;\"Loja; Centro\"") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
