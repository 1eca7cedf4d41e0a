package calculator

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

var allColumns = model.Schema

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(created time.Time, status string, qty int64) model.Record {
	_, week := created.ISOWeek()
	return model.Record{
		DataCriacao:      created,
		Ano:              created.Year(),
		MesNumero:        int(created.Month()),
		SemanaAno:        week,
		StatusKPI:        status,
		QuantidadeKPI:    qty,
		ValorFaturadoKPI: decimal.NewFromInt(qty * 10),
	}
}

func TestTotals_HundredRows(t *testing.T) {
	t.Parallel()

	records := make([]model.Record, 0, 100)
	for i := 0; i < 100; i++ {
		status := "Em aberto"
		switch {
		case i < 10:
			status = "Cancelado"
		case i < 30:
			status = "Faturado"
		}
		records = append(records, rec(day(2024, 3, 1), status, 1))
	}
	ds := model.NewDataset(records, allColumns, nil)

	got := Totals(ds)
	want := QuantityKPIs{Created: 100, Cancelled: 10, Invoiced: 20, Open: 70}
	if got.Quantity != want {
		t.Fatalf("want %+v, got %+v", want, got.Quantity)
	}
	if got.Quantity.Created != got.Quantity.Cancelled+got.Quantity.Invoiced+got.Quantity.Open {
		t.Fatalf("created must equal cancelled + invoiced + open")
	}
	if !got.Value.Open.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("value open = %s", got.Value.Open)
	}

	groups := StatusIndicators(got)
	if len(groups) != 2 || groups[0].Indicators[3].Value != 70 {
		t.Fatalf("unexpected indicator cards: %+v", groups)
	}
}

func TestTotals_IdentityOnSubsets(t *testing.T) {
	t.Parallel()

	statuses := []string{"Cancelado", "Faturado", "Pendente", model.SentinelLabel}
	var records []model.Record
	for i := 0; i < 40; i++ {
		r := rec(day(2024, time.Month(i%12+1), i%28+1), statuses[i%len(statuses)], int64(i*3%7))
		r.CanalBI = fmt.Sprintf("canal-%d", i%3)
		records = append(records, r)
	}
	ds := model.NewDataset(records, allColumns, nil)

	for _, canal := range []string{"canal-0", "canal-1", "canal-2"} {
		sub := ds.Subset(func(r *model.Record) bool { return r.CanalBI == canal })
		q := Totals(sub).Quantity
		if q.Created != q.Cancelled+q.Invoiced+q.Open {
			t.Fatalf("%s: identity broken: %+v", canal, q)
		}
	}
	if Totals(ds.Subset(func(*model.Record) bool { return false })).Quantity != (QuantityKPIs{}) {
		t.Fatalf("empty subset must produce zero totals")
	}
}

func TestPercentChange(t *testing.T) {
	t.Parallel()

	if c := PercentChange(100, 50); c.Kind != ChangeNumeric || c.Percent != 100 {
		t.Fatalf("calc(100, 50) = %+v", c)
	}
	if c := PercentChange(50, 0); c.Kind != ChangeNew {
		t.Fatalf("calc(50, 0) = %+v", c)
	}
	if c := PercentChange(0, 0); c.Kind != ChangeNoData {
		t.Fatalf("calc(0, 0) = %+v", c)
	}
	if c := PercentChange(0, 40); c.Kind != ChangeNumeric || c.Percent != -100 {
		t.Fatalf("calc(0, 40) = %+v", c)
	}
	if c := PercentChange(75, 100); math.Abs(c.Percent+25) > 1e-9 {
		t.Fatalf("calc(75, 100) = %+v", c)
	}
}

func TestWindows_Clipping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		p     Period
		today time.Time
		cur   Window
		prev  Window
	}{
		{"mtd day 31 into february", PeriodMonth, day(2024, 3, 31),
			Window{day(2024, 3, 1), day(2024, 3, 31)}, Window{day(2024, 2, 1), day(2024, 2, 29)}},
		{"mtd day 31 into 30-day month", PeriodMonth, day(2023, 5, 31),
			Window{day(2023, 5, 1), day(2023, 5, 31)}, Window{day(2023, 4, 1), day(2023, 4, 30)}},
		{"mtd january wraps year", PeriodMonth, day(2024, 1, 15),
			Window{day(2024, 1, 1), day(2024, 1, 15)}, Window{day(2023, 12, 1), day(2023, 12, 15)}},
		{"ytd leap day", PeriodYear, day(2024, 2, 29),
			Window{day(2024, 1, 1), day(2024, 2, 29)}, Window{day(2023, 1, 1), day(2023, 2, 28)}},
		{"wtd monday start", PeriodWeek, day(2024, 3, 14),
			Window{day(2024, 3, 11), day(2024, 3, 14)}, Window{day(2024, 3, 4), day(2024, 3, 7)}},
		{"wtd sunday belongs to the week that started monday", PeriodWeek, day(2024, 3, 17),
			Window{day(2024, 3, 11), day(2024, 3, 17)}, Window{day(2024, 3, 4), day(2024, 3, 10)}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CurrentWindow(tc.p, tc.today); !got.Start.Equal(tc.cur.Start) || !got.End.Equal(tc.cur.End) {
				t.Fatalf("current want %v got %v", tc.cur, got)
			}
			if got := PreviousWindow(tc.p, tc.today); !got.Start.Equal(tc.prev.Start) || !got.End.Equal(tc.prev.End) {
				t.Fatalf("previous want %v got %v", tc.prev, got)
			}
		})
	}
}

func TestComparePeriods(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 3, 14, 16, 30, 0, 0, time.UTC)
	ds := model.NewDataset([]model.Record{
		rec(today, "Faturado", 10),
		rec(day(2024, 3, 11), "Pendente", 5),
		rec(day(2024, 3, 5), "Faturado", 4),
		rec(day(2024, 2, 10), "Cancelado", 3),
		rec(day(2023, 3, 14), "Faturado", 8),
		rec(day(2023, 3, 15), "Faturado", 100),
	}, allColumns, nil)

	got := map[string]Comparison{}
	for _, c := range ComparePeriods(ds, today) {
		got[c.Metric+"/"+string(c.Period)] = c
	}
	if len(got) != 6 {
		t.Fatalf("want 6 comparisons, got %d", len(got))
	}

	check := func(key string, cur, prev int64, kind ChangeKind) {
		t.Helper()
		c := got[key]
		if c.Current != cur || c.Previous != prev || c.Change.Kind != kind {
			t.Errorf("%s: want %d/%d %s, got %d/%d %s", key, cur, prev, kind, c.Current, c.Previous, c.Change.Kind)
		}
	}
	check("created/ytd", 22, 8, ChangeNumeric)
	check("created/mtd", 19, 3, ChangeNumeric)
	check("created/wtd", 15, 4, ChangeNumeric)
	check("invoiced/ytd", 14, 8, ChangeNumeric)
	check("invoiced/mtd", 14, 0, ChangeNew)
	check("invoiced/wtd", 10, 4, ChangeNumeric)

	if c := got["created/wtd"]; c.Change.Percent != 275 {
		t.Errorf("created/wtd percent = %v", c.Change.Percent)
	}
}

func TestTopN_TenOfTwenty(t *testing.T) {
	t.Parallel()

	var records []model.Record
	for g := 1; g <= 20; g++ {
		r := rec(day(2024, 1, 1), "Faturado", int64(g))
		r.BrandCode = fmt.Sprintf("B%02d", g)
		records = append(records, r, r)
	}
	ds := model.NewDataset(records, allColumns, nil)

	top := TopN(ds, TopNSpec{GroupBy: model.FieldBrandCode, Metric: MetricQuantity, N: 10})
	if len(top) != 10 {
		t.Fatalf("want 10 groups, got %d", len(top))
	}
	for i, g := range top {
		want := fmt.Sprintf("B%02d", 20-i)
		if g.Key != want || g.Quantity != int64(2*(20-i)) {
			t.Fatalf("position %d: want %s, got %+v", i, want, g)
		}
	}
}

func TestTopN_StatusAndExclude(t *testing.T) {
	t.Parallel()

	mk := func(name, status string, qty int64) model.Record {
		r := rec(day(2024, 1, 1), status, qty)
		r.Franqueado = name
		return r
	}
	ds := model.NewDataset([]model.Record{
		mk("A", "Faturado", 5),
		mk("B", "Cancelado", 50),
		mk(model.SentinelLabel, "Faturado", 99),
		mk("C", "Faturado", 5),
		mk("B", "Faturado", 1),
	}, allColumns, nil)

	top := TopN(ds, TopNSpec{
		GroupBy:  model.FieldFranqueado,
		Metric:   MetricQuantity,
		N:        15,
		Statuses: []model.Status{model.StatusInvoiced},
		Exclude:  []string{model.SentinelLabel},
	})
	keys := make([]string, len(top))
	for i, g := range top {
		keys[i] = g.Key
	}
	if fmt.Sprint(keys) != "[A C B]" {
		t.Fatalf("unexpected ranking (ties keep first-seen order): %v", keys)
	}

	missing := model.NewDataset(ds.Records, []model.Field{model.FieldDataCriacao}, nil)
	if TopN(missing, TopNSpec{GroupBy: model.FieldFranqueado, N: 3}) != nil {
		t.Fatalf("absent column must produce no rollup")
	}
}

func TestShareAndSeries(t *testing.T) {
	t.Parallel()

	mk := func(created time.Time, cat, status string, qty int64) model.Record {
		r := rec(created, status, qty)
		r.BrandCategory = cat
		return r
	}
	ds := model.NewDataset([]model.Record{
		mk(day(2023, 11, 3), "Lux", "Faturado", 2),
		mk(day(2024, 1, 9), "Lux", "Cancelado", 7),
		mk(day(2024, 2, 20), "Sport", "Faturado", 4),
		mk(day(2024, 2, 21), "Lux", "Faturado", 1),
	}, allColumns, nil)

	share := Share(ds, model.FieldBrandCategory)
	if len(share) != 2 || share[0].Key != "Lux" || share[0].Rows != 3 || share[0].Percent != 75 {
		t.Fatalf("unexpected share: %+v", share)
	}

	series := MonthlySeries(ds, model.StatusInvoiced)
	labels := make([]string, len(series))
	qty := make([]int64, len(series))
	for i, p := range series {
		labels[i], qty[i] = p.Label, p.Quantity
	}
	if fmt.Sprint(labels) != "[2023-11 2023-12 2024-01 2024-02]" || fmt.Sprint(qty) != "[2 0 0 5]" {
		t.Fatalf("unexpected monthly series: %v %v", labels, qty)
	}

	years := YearlyTotals(ds)
	if len(years) != 2 || years[0].Year != 2023 || years[1].Quantity != 12 {
		t.Fatalf("unexpected yearly totals: %+v", years)
	}
}
