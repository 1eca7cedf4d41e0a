package dashboard

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
)

// ChartSnippets rendered chart blocks; empty when the chart has no data
type ChartSnippets struct {
	Monthly         template.HTML
	YearlyCreated   template.HTML
	YearlyInvoiced  template.HTML
	TopFranchises   template.HTML
	TopSalespeople  template.HTML
	TopBrands       template.HTML
	BrandCategories template.HTML
	Collections     template.HTML
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

func renderSnippet(c snippetRenderer) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + "\n" + s.Script)
}

func boolPtr(b bool) *bool { return &b }

func initOpts(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: id,
		Height:  "340px",
		Width:   "100%",
	})
}

// RenderCharts turns the chart data into echarts snippets.
func RenderCharts(c Charts) ChartSnippets {
	var out ChartSnippets
	if len(c.MonthlyCreated) > 0 {
		out.Monthly = renderSnippet(monthlyLine(c.MonthlyCreated, c.MonthlyInvoiced))
	}
	if len(c.YearlyCreated) > 0 {
		out.YearlyCreated = renderSnippet(yearlyBar("yearly-created", "Volume Criado por Ano", "Criada", c.YearlyCreated))
	}
	if len(c.YearlyInvoiced) > 0 {
		out.YearlyInvoiced = renderSnippet(yearlyBar("yearly-invoiced", "Volume Faturado por Ano", "Faturada", c.YearlyInvoiced))
	}
	if len(c.TopFranchises) > 0 {
		out.TopFranchises = renderSnippet(rankBar("top-franchises", "Top Franqueados (Qtd. Faturada)", c.TopFranchises))
	}
	if len(c.TopSalespeople) > 0 {
		out.TopSalespeople = renderSnippet(rankBar("top-salespeople", "Top Vendedores (Qtd. Faturada)", c.TopSalespeople))
	}
	if len(c.TopBrands) > 0 {
		out.TopBrands = renderSnippet(rankBar("top-brands", "Top Marcas (Qtd.)", c.TopBrands))
	}
	if len(c.BrandCategories) > 0 {
		out.BrandCategories = renderSnippet(sharePie("brand-categories", "Categoria da Marca", c.BrandCategories))
	}
	if len(c.Collections) > 0 {
		out.Collections = renderSnippet(sharePie("collections", "Coleções", c.Collections))
	}
	return out
}

func monthlyLine(created, invoiced []calculator.MonthPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("monthly"),
		charts.WithTitleOpts(opts.Title{Title: "Quantidade por Mês"}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Top: "bottom"}),
	)

	labels := make([]string, len(created))
	createdData := make([]opts.LineData, len(created))
	for i, p := range created {
		labels[i] = p.Label
		createdData[i] = opts.LineData{Value: p.Quantity}
	}
	// the invoiced series may start later; align it on the created labels
	byLabel := make(map[string]int64, len(invoiced))
	for _, p := range invoiced {
		byLabel[p.Label] = p.Quantity
	}
	invoicedData := make([]opts.LineData, len(created))
	for i, l := range labels {
		invoicedData[i] = opts.LineData{Value: byLabel[l]}
	}

	line.SetXAxis(labels).
		AddSeries("Criada", createdData).
		AddSeries("Faturada", invoicedData)
	return line
}

func yearlyBar(id, title, series string, points []calculator.YearPoint) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(false)}),
	)
	labels := make([]string, len(points))
	data := make([]opts.BarData, len(points))
	for i, p := range points {
		labels[i] = FormatYear(p.Year)
		data[i] = opts.BarData{Value: p.Quantity}
	}
	bar.SetXAxis(labels).AddSeries(series, data)
	return bar
}

func rankBar(id, title string, groups []calculator.GroupTotal) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(false)}),
	)
	// largest on top once the axes are swapped
	labels := make([]string, len(groups))
	data := make([]opts.BarData, len(groups))
	for i, g := range groups {
		j := len(groups) - 1 - i
		labels[j] = g.Key
		data[j] = opts.BarData{Value: g.Quantity}
	}
	bar.SetXAxis(labels).AddSeries("Quantidade", data)
	bar.XYReversal()
	return bar
}

func sharePie(id, title string, items []calculator.ShareItem) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(id),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Top: "bottom"}),
	)
	data := make([]opts.PieData, len(items))
	for i, it := range items {
		data[i] = opts.PieData{Name: it.Key, Value: it.Rows}
	}
	pie.AddSeries(title, data)
	return pie
}
