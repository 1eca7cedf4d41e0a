package parser

import (
	"fmt"
	"log"
	"strings"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Options cleaner settings
type Options struct {
	Locale      string
	DateLayouts []string
	Rules       []RenameRule
}

// Cleaner turns a raw table into the canonical dataset.
type Cleaner struct {
	mapper  *FieldMapper
	months  *MonthNamer
	layouts []string
}

// NewCleaner creates a cleaner. Zero Options means default rules and pt-BR month names.
func NewCleaner(opts Options) *Cleaner {
	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	return &Cleaner{
		mapper:  NewFieldMapper(opts.Rules),
		months:  NewMonthNamer(locale),
		layouts: opts.DateLayouts,
	}
}

// Clean maps headers, coerces values and derives calendar fields.
// Rows whose creation date cannot be parsed are dropped; bad numbers become 0;
// blank categories become model.SentinelLabel. The report is returned even on error.
func (c *Cleaner) Clean(raw *model.RawTable) (*model.Dataset, *CleanReport, error) {
	report := &CleanReport{MonthLocale: c.months.Locale()}
	if raw == nil || len(raw.Headers) == 0 {
		return nil, report, fmt.Errorf("%w: no header row", ErrSchemaMismatch)
	}
	report.SheetName = raw.SheetName
	report.RawRows = raw.RowCount()

	mappings := c.mapper.Resolve(raw.Headers)
	report.Mappings = mappings
	if len(mappings) == 0 {
		return nil, report, fmt.Errorf("%w: none of the expected columns found in %d headers", ErrSchemaMismatch, len(raw.Headers))
	}

	mapped := make(map[model.Field]int, len(mappings))
	for _, m := range mappings {
		mapped[m.Field] = m.ColumnIndex
	}
	dateIdx, ok := mapped[model.FieldDataCriacao]
	if !ok {
		return nil, report, fmt.Errorf("%w: creation date column missing", ErrSchemaMismatch)
	}

	_, hasGroup := mapped[model.FieldGrupoFranqueadoW]
	_, hasFranchisee := mapped[model.FieldFranqueado]
	report.DerivedFranqueado = hasGroup && !hasFranchisee

	columns := make([]model.Field, 0, len(model.Schema))
	for _, f := range model.Schema {
		_, isMapped := mapped[f]
		switch {
		case isMapped, isDerived(f):
			columns = append(columns, f)
		case f == model.FieldFranqueado && report.DerivedFranqueado:
			columns = append(columns, f)
		default:
			report.Missing = append(report.Missing, f)
		}
	}

	records := make([]model.Record, 0, raw.RowCount())
	for i := 0; i < raw.RowCount(); i++ {
		created, ok := ParseDate(raw.Cell(i, dateIdx), c.layouts)
		if !ok {
			report.DroppedRows++
			continue
		}
		rec := model.Record{DataCriacao: created}
		c.derive(&rec)

		for _, m := range mappings {
			value := raw.Cell(i, m.ColumnIndex)
			switch {
			case m.Field == model.FieldDataCriacao:
			case m.Field == model.FieldNumPedido:
				rec.NumPedido = strings.TrimSpace(value)
			case m.Field == model.FieldQuantidadeKPI:
				qty, coerced := CoerceQuantity(value)
				rec.QuantidadeKPI = qty
				if coerced {
					report.CoercedValues++
				}
			case m.Field == model.FieldValorFaturadoKPI:
				amount, coerced := CoerceAmount(value)
				rec.ValorFaturadoKPI = amount
				if coerced {
					report.CoercedValues++
				}
			case m.Field.IsCategorical():
				if IsBlank(value) {
					value = model.SentinelLabel
					report.FilledSentinels++
				}
				rec.SetCategory(m.Field, strings.TrimSpace(value))
			}
		}
		if report.DerivedFranqueado {
			rec.Franqueado = rec.GrupoFranqueadoW
		}
		records = append(records, rec)
	}
	report.Rows = len(records)

	if report.DerivedFranqueado {
		log.Printf("[cleaner] Franqueado derived from GrupoFranqueadoW")
	}
	if len(report.Missing) > 0 {
		log.Printf("[cleaner] columns not found in source: %v", report.Missing)
	}
	log.Printf("[cleaner] sheet=%q rows=%d kept=%d dropped=%d coerced=%d sentinels=%d months=%s",
		report.SheetName, report.RawRows, report.Rows, report.DroppedRows,
		report.CoercedValues, report.FilledSentinels, report.MonthLocale)

	if len(records) == 0 {
		return nil, report, fmt.Errorf("%w: %d rows read, none with a valid creation date", ErrNoValidRows, report.RawRows)
	}

	ds := model.NewDataset(records, columns, c.months.Domain())
	return ds, report, nil
}

// derive fills Ano, MesNumero, MesNome and SemanaAno. Weeks are ISO-8601 (Monday start).
func (c *Cleaner) derive(rec *model.Record) {
	t := rec.DataCriacao
	rec.Ano = t.Year()
	rec.MesNumero = int(t.Month())
	rec.MesNome = c.months.Name(t.Month())
	// calendar year with ISO week: Dec 29-31 can be week 1 of Ano, early Jan week 52/53
	_, rec.SemanaAno = t.ISOWeek()
}

func isDerived(f model.Field) bool {
	for _, d := range model.DerivedFields {
		if d == f {
			return true
		}
	}
	return false
}

