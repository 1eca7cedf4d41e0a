package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Metric summed by a rollup
type Metric string

const (
	MetricQuantity Metric = "quantity"
	MetricValue    Metric = "value"
)

// GroupTotal one group of a rollup
type GroupTotal struct {
	Key      string          `json:"key"`
	Rows     int             `json:"rows"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

func (g GroupTotal) metric(m Metric) decimal.Decimal {
	if m == MetricValue {
		return g.Value
	}
	return decimal.NewFromInt(g.Quantity)
}

// TopNSpec describes one ranked chart
type TopNSpec struct {
	GroupBy model.Field
	Metric  Metric
	N       int
	// Statuses restricts the rows summed; empty means every status
	Statuses []model.Status
	// Exclude group keys left out of the ranking
	Exclude []string
}

// GroupBy sums ds per distinct value of field, groups in first-seen order.
func GroupBy(ds *model.Dataset, field model.Field, keep func(*model.Record) bool) []GroupTotal {
	if ds == nil {
		return nil
	}
	index := make(map[string]int)
	var groups []GroupTotal
	for i := range ds.Records {
		r := &ds.Records[i]
		if keep != nil && !keep(r) {
			continue
		}
		key := r.Text(field)
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, GroupTotal{Key: key})
		}
		g := &groups[idx]
		g.Rows++
		g.Quantity += r.QuantidadeKPI
		g.Value = g.Value.Add(r.ValorFaturadoKPI)
	}
	return groups
}

// TopN returns the N groups with the largest metric, descending.
// Ties keep first-seen order, stable across runs on unchanged input.
func TopN(ds *model.Dataset, spec TopNSpec) []GroupTotal {
	if ds == nil || !ds.Has(spec.GroupBy) {
		return nil
	}
	groups := GroupBy(ds, spec.GroupBy, func(r *model.Record) bool {
		return len(spec.Statuses) == 0 || lo.Contains(spec.Statuses, r.Status())
	})
	groups = lo.Filter(groups, func(g GroupTotal, _ int) bool {
		return !lo.Contains(spec.Exclude, g.Key)
	})

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].metric(spec.Metric).GreaterThan(groups[j].metric(spec.Metric))
	})
	if spec.N > 0 && len(groups) > spec.N {
		groups = groups[:spec.N]
	}
	return groups
}

// ShareItem slice of a proportion chart
type ShareItem struct {
	Key     string  `json:"key"`
	Rows    int     `json:"rows"`
	Percent float64 `json:"percent"`
}

// Share counts rows per value of field, largest first.
func Share(ds *model.Dataset, field model.Field) []ShareItem {
	if ds.Empty() || !ds.Has(field) {
		return nil
	}
	groups := GroupBy(ds, field, nil)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Rows > groups[j].Rows })

	total := float64(ds.Len())
	return lo.Map(groups, func(g GroupTotal, _ int) ShareItem {
		return ShareItem{Key: g.Key, Rows: g.Rows, Percent: float64(g.Rows) / total * 100}
	})
}

// MonthPoint quantity of one calendar month
type MonthPoint struct {
	Month    time.Time `json:"month"`
	Label    string    `json:"label"`
	Quantity int64     `json:"quantity"`
}

// MonthlySeries sums quantity per calendar month from the first to the last month present;
// months without rows are reported with 0.
func MonthlySeries(ds *model.Dataset, statuses ...model.Status) []MonthPoint {
	if ds.Empty() {
		return nil
	}
	sums := make(map[time.Time]int64)
	var first, last time.Time
	for i := range ds.Records {
		r := &ds.Records[i]
		if len(statuses) > 0 && !lo.Contains(statuses, r.Status()) {
			continue
		}
		m := time.Date(r.DataCriacao.Year(), r.DataCriacao.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[m] += r.QuantidadeKPI
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}
	if first.IsZero() {
		return nil
	}

	var out []MonthPoint
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, MonthPoint{
			Month:    m,
			Label:    fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())),
			Quantity: sums[m],
		})
	}
	return out
}

// YearPoint quantity of one year
type YearPoint struct {
	Year     int   `json:"year"`
	Quantity int64 `json:"quantity"`
}

// YearlyTotals sums quantity per year, ascending.
func YearlyTotals(ds *model.Dataset, statuses ...model.Status) []YearPoint {
	if ds.Empty() {
		return nil
	}
	sums := make(map[int]int64)
	for i := range ds.Records {
		r := &ds.Records[i]
		if len(statuses) > 0 && !lo.Contains(statuses, r.Status()) {
			continue
		}
		sums[r.Ano] += r.QuantidadeKPI
	}
	years := lo.Keys(sums)
	sort.Ints(years)
	return lo.Map(years, func(y int, _ int) YearPoint {
		return YearPoint{Year: y, Quantity: sums[y]}
	})
}
