package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
	"github.com/willfaleixo/Dashboards-BI/internal/filter"
	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Option one choice of a filter widget
type Option struct {
	Value    string
	Selected bool
}

// Widget one multi-select of the sidebar
type Widget struct {
	Key     string
	Label   string
	Options []Option
}

// Card one plain KPI card
type Card struct {
	Label string
	Value string
}

// CardGroup a row of KPI cards
type CardGroup struct {
	Name  string
	Cards []Card
}

// ComparisonCard one period comparison
type ComparisonCard struct {
	Label    string
	Current  string
	Previous string
	Window   string
	Change   ChangeView
}

// Table capped data table
type Table struct {
	Columns   []string
	Rows      [][]string
	Shown     int
	Total     int
	Truncated bool
}

// ErrorPanel replaces the filter-dependent sections when no data is available
type ErrorPanel struct {
	Kind    string
	Message string
}

// Page everything the template renders
type Page struct {
	Title       string
	LogoURL     string
	LastUpdated string
	Query       template.URL
	Error       *ErrorPanel

	Widgets     []Widget
	Active      []filter.Active
	Empty       bool
	Groups      []CardGroup
	Comparisons []ComparisonCard
	Charts      ChartSnippets
	Table       Table
}

// Input what Build needs from the request
type Input struct {
	Title       string
	LogoURL     string
	Engine      *filter.Engine
	Selection   filter.Selection
	Filtered    *model.Dataset
	Comparisons []calculator.Comparison
	Limits      Limits
	TableCap    int
}

// Build lays out the page for one filtered view.
func Build(in Input) *Page {
	full := in.Engine.Dataset()
	p := &Page{
		Title:   in.Title,
		LogoURL: in.LogoURL,
		Query:   template.URL(in.Selection.Encode()),
		Active:  in.Engine.Restrictions(in.Selection),
		Empty:   in.Filtered.Empty(),
	}
	if !full.Source.ModTime.IsZero() {
		p.LastUpdated = full.Source.ModTime.Format("02/01/2006 15:04")
	}

	for _, d := range in.Engine.Available() {
		selected := filter.ValueSet(in.Selection[d.Key])
		w := Widget{Key: d.Key, Label: d.Label}
		for _, v := range in.Engine.Options(d.Key) {
			_, ok := selected[v]
			w.Options = append(w.Options, Option{Value: v, Selected: ok})
		}
		p.Widgets = append(p.Widgets, w)
	}

	totals := calculator.Totals(in.Filtered)
	money := map[string]decimal.Decimal{
		"value_created":   totals.Value.Created,
		"value_cancelled": totals.Value.Cancelled,
		"value_invoiced":  totals.Value.Invoiced,
		"value_open":      totals.Value.Open,
	}
	for _, g := range calculator.StatusIndicators(totals) {
		cg := CardGroup{Name: g.Name}
		for _, ind := range g.Indicators {
			value := FormatInt(int64(ind.Value))
			if d, ok := money[ind.ID]; ok {
				value = FormatMoney(d)
			}
			cg.Cards = append(cg.Cards, Card{Label: ind.Name, Value: value})
		}
		p.Groups = append(p.Groups, cg)
	}

	for _, c := range in.Comparisons {
		p.Comparisons = append(p.Comparisons, ComparisonCard{
			Label:    comparisonLabel(c),
			Current:  FormatInt(c.Current),
			Previous: FormatInt(c.Previous),
			Window:   fmt.Sprintf("%s a %s", FormatDate(c.CurrentWindow.Start), FormatDate(c.CurrentWindow.End)),
			Change:   FormatChange(c.Change),
		})
	}

	if !p.Empty {
		p.Charts = RenderCharts(BuildCharts(in.Filtered, in.Limits))
	}
	p.Table = BuildTable(in.Filtered, in.TableCap)
	return p
}

// ErrorPage page chrome with the static error panel
func ErrorPage(title, logoURL, kind, message string) *Page {
	return &Page{
		Title:   title,
		LogoURL: logoURL,
		Error:   &ErrorPanel{Kind: kind, Message: message},
	}
}

func comparisonLabel(c calculator.Comparison) string {
	metric := "Qtd. Criada"
	if c.Metric == calculator.MetricInvoiced {
		metric = "Qtd. Faturada"
	}
	switch c.Period {
	case calculator.PeriodYear:
		return metric + " (YTD)"
	case calculator.PeriodMonth:
		return metric + " (MTD)"
	default:
		return metric + " (WTD)"
	}
}

// BuildTable the first rowCap rows of ds over the table columns present.
func BuildTable(ds *model.Dataset, rowCap int) Table {
	cols := lo.Filter(model.TableColumns, func(f model.Field, _ int) bool { return ds.Has(f) })
	t := Table{Total: ds.Len()}
	for _, f := range cols {
		t.Columns = append(t.Columns, string(f))
	}
	n := ds.Len()
	if rowCap > 0 && n > rowCap {
		n = rowCap
		t.Truncated = true
	}
	t.Shown = n
	for i := 0; i < n; i++ {
		r := &ds.Records[i]
		row := make([]string, len(cols))
		for j, f := range cols {
			switch f {
			case model.FieldDataCriacao:
				row[j] = FormatDate(r.DataCriacao)
			case model.FieldQuantidadeKPI:
				row[j] = FormatInt(r.QuantidadeKPI)
			default:
				row[j] = r.Text(f)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"now": func() string { return time.Now().Format("02/01/2006 15:04") },
}).Parse(pageHTML))

// Render writes the page as HTML.
func Render(w io.Writer, p *Page) error {
	return pageTemplate.Execute(w, p)
}
