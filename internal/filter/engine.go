package filter

import (
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// Selection chosen values per dimension key. A missing or empty key means no restriction.
type Selection map[string][]string

// ParseQuery reads a selection from query parameters, one repeated key per
// dimension. Unknown keys and blank values are ignored.
func ParseQuery(values url.Values) Selection {
	sel := Selection{}
	for _, d := range Dimensions {
		var picked []string
		for _, v := range values[d.Key] {
			if v = strings.TrimSpace(v); v != "" {
				picked = append(picked, v)
			}
		}
		if len(picked) > 0 {
			sel[d.Key] = lo.Uniq(picked)
		}
	}
	return sel
}

// Encode renders the selection as a query string, omitting empty dimensions.
func (s Selection) Encode() string {
	q := url.Values{}
	for _, d := range Dimensions {
		for _, v := range s[d.Key] {
			q.Add(d.Key, v)
		}
	}
	return q.Encode()
}

// Empty reports whether no dimension carries a value.
func (s Selection) Empty() bool {
	for _, v := range s {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// ValueSet the values as a lookup set
func ValueSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Active one restricting dimension, for the filter summary
type Active struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Engine applies selections against a fixed reference dataset. Option lists
// are computed once from the full data and used to detect "everything selected".
type Engine struct {
	full    *model.Dataset
	options map[string][]string
}

// NewEngine precomputes the option lists of every dimension present in full.
func NewEngine(full *model.Dataset) *Engine {
	e := &Engine{full: full, options: make(map[string][]string, len(Dimensions))}
	for _, d := range Dimensions {
		if full.Has(d.Field) {
			e.options[d.Key] = DimensionOptions(full, d)
		}
	}
	return e
}

// Dataset the reference dataset
func (e *Engine) Dataset() *model.Dataset { return e.full }

// Options cached option list of a dimension key; empty when absent.
func (e *Engine) Options(key string) []string {
	if opts, ok := e.options[key]; ok {
		return opts
	}
	return []string{}
}

// Available dimensions whose column exists, in sidebar order
func (e *Engine) Available() []Dimension {
	return lo.Filter(Dimensions, func(d Dimension, _ int) bool {
		_, ok := e.options[d.Key]
		return ok
	})
}

// Restrictions the dimensions of sel that actually narrow the data.
// A dimension whose selection covers all of its options is a no-op.
func (e *Engine) Restrictions(sel Selection) []Active {
	var out []Active
	for _, d := range Dimensions {
		opts, ok := e.options[d.Key]
		values := sel[d.Key]
		if !ok || len(values) == 0 {
			continue
		}
		if len(opts) > 0 && lo.Every(values, opts) {
			continue
		}
		out = append(out, Active{Key: d.Key, Label: d.Label, Values: values})
	}
	return out
}

// Apply returns the rows of ds matching every restricting dimension of sel:
// AND across dimensions, OR within one. ds is returned unchanged when nothing restricts.
func (e *Engine) Apply(ds *model.Dataset, sel Selection) *model.Dataset {
	if ds == nil || sel.Empty() {
		return ds
	}
	active := e.Restrictions(sel)
	if len(active) == 0 {
		return ds
	}

	type check struct {
		field model.Field
		set   map[string]struct{}
	}
	checks := make([]check, 0, len(active))
	for _, a := range active {
		d, _ := LookupDimension(a.Key)
		checks = append(checks, check{field: d.Field, set: ValueSet(a.Values)})
	}

	return ds.Subset(func(r *model.Record) bool {
		for _, c := range checks {
			if _, ok := c.set[r.Text(c.field)]; !ok {
				return false
			}
		}
		return true
	})
}
