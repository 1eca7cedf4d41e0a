package calculator

import (
	"time"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Period to-date window kind
type Period string

const (
	PeriodYear  Period = "ytd"
	PeriodMonth Period = "mtd"
	PeriodWeek  Period = "wtd"
)

// Periods in display order
var Periods = []Period{PeriodYear, PeriodMonth, PeriodWeek}

// Window inclusive range of calendar days
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	d := dayOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clipDate builds year-month-day, moving day back to the month's last day when needed.
func clipDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	if n := daysIn(year, month); day > n {
		day = n
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// CurrentWindow [start of period, today]. Weeks start on Monday.
func CurrentWindow(p Period, today time.Time) Window {
	today = dayOf(today)
	loc := today.Location()
	switch p {
	case PeriodYear:
		return Window{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc), End: today}
	case PeriodMonth:
		return Window{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc), End: today}
	default:
		offset := (int(today.Weekday()) + 6) % 7
		return Window{Start: today.AddDate(0, 0, -offset), End: today}
	}
}

// PreviousWindow the same day offsets one year, month or week earlier.
// Days that do not exist in the earlier month are clipped to its last day.
func PreviousWindow(p Period, today time.Time) Window {
	today = dayOf(today)
	loc := today.Location()
	switch p {
	case PeriodYear:
		year := today.Year() - 1
		return Window{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
			End:   clipDate(year, today.Month(), today.Day(), loc),
		}
	case PeriodMonth:
		firstPrev := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, loc)
		return Window{
			Start: firstPrev,
			End:   clipDate(firstPrev.Year(), firstPrev.Month(), today.Day(), loc),
		}
	default:
		cur := CurrentWindow(PeriodWeek, today)
		return Window{Start: cur.Start.AddDate(0, 0, -7), End: today.AddDate(0, 0, -7)}
	}
}

// ChangeKind how a percent change must be displayed
type ChangeKind string

const (
	ChangeNumeric ChangeKind = "numeric"
	// ChangeNew previous is zero and current is positive
	ChangeNew ChangeKind = "new"
	// ChangeNoData both sides are zero
	ChangeNoData ChangeKind = "no_data"
)

// Change percent variation; Percent is only meaningful when Kind is numeric
type Change struct {
	Kind    ChangeKind `json:"kind"`
	Percent float64    `json:"percent"`
}

// PercentChange (current - previous) / previous * 100 without dividing by zero.
func PercentChange(current, previous float64) Change {
	if previous > 0 {
		return Change{Kind: ChangeNumeric, Percent: (current - previous) / previous * 100}
	}
	if current > 0 {
		return Change{Kind: ChangeNew}
	}
	return Change{Kind: ChangeNoData}
}

// Comparison metric names
const (
	MetricCreated  = "created"
	MetricInvoiced = "invoiced"
)

// Comparison one to-date card
type Comparison struct {
	Period         Period `json:"period"`
	Metric         string `json:"metric"`
	Current        int64  `json:"current"`
	Previous       int64  `json:"previous"`
	CurrentWindow  Window `json:"currentWindow"`
	PreviousWindow Window `json:"previousWindow"`
	Change         Change `json:"change"`
}

// ComparePeriods sums created and invoiced quantity for the YTD, MTD and WTD windows
// ending at today and their prior counterparts. Callers pass the latest creation date
// of the unfiltered dataset as today.
func ComparePeriods(ds *model.Dataset, today time.Time) []Comparison {
	type pair struct{ cur, prev Window }
	windows := make([]pair, len(Periods))
	for i, p := range Periods {
		windows[i] = pair{cur: CurrentWindow(p, today), prev: PreviousWindow(p, today)}
	}

	created := make([][2]int64, len(Periods))
	invoiced := make([][2]int64, len(Periods))
	if ds != nil {
		for i := range ds.Records {
			r := &ds.Records[i]
			isInvoiced := r.Status() == model.StatusInvoiced
			for j, w := range windows {
				if w.cur.Contains(r.DataCriacao) {
					created[j][0] += r.QuantidadeKPI
					if isInvoiced {
						invoiced[j][0] += r.QuantidadeKPI
					}
				}
				if w.prev.Contains(r.DataCriacao) {
					created[j][1] += r.QuantidadeKPI
					if isInvoiced {
						invoiced[j][1] += r.QuantidadeKPI
					}
				}
			}
		}
	}

	out := make([]Comparison, 0, 2*len(Periods))
	for _, metric := range []string{MetricCreated, MetricInvoiced} {
		sums := created
		if metric == MetricInvoiced {
			sums = invoiced
		}
		for j, p := range Periods {
			out = append(out, Comparison{
				Period:         p,
				Metric:         metric,
				Current:        sums[j][0],
				Previous:       sums[j][1],
				CurrentWindow:  windows[j].cur,
				PreviousWindow: windows[j].prev,
				Change:         PercentChange(float64(sums[j][0]), float64(sums[j][1])),
			})
		}
	}
	return out
}
