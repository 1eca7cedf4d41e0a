package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Indicator one KPI card value
type Indicator struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// IndicatorGroup KPI cards shown together
type IndicatorGroup struct {
	Name       string      `json:"name"`
	Indicators []Indicator `json:"indicators"`
}

// QuantityKPIs quantity split by status. Open is always Created - Cancelled - Invoiced.
type QuantityKPIs struct {
	Created   int64 `json:"created"`
	Cancelled int64 `json:"cancelled"`
	Invoiced  int64 `json:"invoiced"`
	Open      int64 `json:"open"`
}

// ValueKPIs monetary split by status
type ValueKPIs struct {
	Created   decimal.Decimal `json:"created"`
	Cancelled decimal.Decimal `json:"cancelled"`
	Invoiced  decimal.Decimal `json:"invoiced"`
	Open      decimal.Decimal `json:"open"`
}

// StatusTotals sums of a dataset grouped by status
type StatusTotals struct {
	Rows     int          `json:"rows"`
	Quantity QuantityKPIs `json:"quantity"`
	Value    ValueKPIs    `json:"value"`
}

// Totals computes the status KPIs of ds. ds is only read.
func Totals(ds *model.Dataset) StatusTotals {
	var t StatusTotals
	if ds == nil {
		return t
	}

	t.Rows = ds.Len()
	for i := range ds.Records {
		r := &ds.Records[i]
		t.Quantity.Created += r.QuantidadeKPI
		t.Value.Created = t.Value.Created.Add(r.ValorFaturadoKPI)
		switch r.Status() {
		case model.StatusCancelled:
			t.Quantity.Cancelled += r.QuantidadeKPI
			t.Value.Cancelled = t.Value.Cancelled.Add(r.ValorFaturadoKPI)
		case model.StatusInvoiced:
			t.Quantity.Invoiced += r.QuantidadeKPI
			t.Value.Invoiced = t.Value.Invoiced.Add(r.ValorFaturadoKPI)
		}
	}
	t.Quantity.Open = t.Quantity.Created - t.Quantity.Cancelled - t.Quantity.Invoiced
	t.Value.Open = t.Value.Created.Sub(t.Value.Cancelled).Sub(t.Value.Invoiced)
	return t
}

// StatusIndicators lays the totals out as the dashboard's KPI cards.
func StatusIndicators(t StatusTotals) []IndicatorGroup {
	return []IndicatorGroup{
		{
			Name: "Quantidade",
			Indicators: []Indicator{
				{ID: "qty_created", Name: "Qtd. Criada", Value: float64(t.Quantity.Created), Unit: "un"},
				{ID: "qty_cancelled", Name: "Qtd. Cancelada", Value: float64(t.Quantity.Cancelled), Unit: "un"},
				{ID: "qty_invoiced", Name: "Qtd. Faturada", Value: float64(t.Quantity.Invoiced), Unit: "un"},
				{ID: "qty_open", Name: "Qtd. em Aberto", Value: float64(t.Quantity.Open), Unit: "un"},
			},
		},
		{
			Name: "Valor",
			Indicators: []Indicator{
				{ID: "value_created", Name: "Valor Criado", Value: t.Value.Created.InexactFloat64(), Unit: "R$"},
				{ID: "value_cancelled", Name: "Valor Cancelado", Value: t.Value.Cancelled.InexactFloat64(), Unit: "R$"},
				{ID: "value_invoiced", Name: "Valor Faturado", Value: t.Value.Invoiced.InexactFloat64(), Unit: "R$"},
				{ID: "value_open", Name: "Valor em Aberto", Value: t.Value.Open.InexactFloat64(), Unit: "R$"},
			},
		},
	}
}
