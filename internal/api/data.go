package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
	"github.com/willfaleixo/Dashboards-BI/internal/dashboard"
	"github.com/willfaleixo/Dashboards-BI/internal/filter"
	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// DimensionOptions choices of one filter widget
type DimensionOptions struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Field   string   `json:"field"`
	Options []string `json:"options"`
}

// ListOptions ordered options of every available dimension
// GET /api/options
func (h *Handler) ListOptions(c *gin.Context) {
	engine, err := h.dataset(c.Request.Context())
	if err != nil {
		noData(c, err)
		return
	}
	dims := lo.Map(engine.Available(), func(d filter.Dimension, _ int) DimensionOptions {
		return DimensionOptions{Key: d.Key, Label: d.Label, Field: string(d.Field), Options: engine.Options(d.Key)}
	})
	c.JSON(http.StatusOK, gin.H{"dimensions": dims})
}

// GetColumnOptions ordered distinct values of any canonical column; unknown columns yield []
// GET /api/options/:column
func (h *Handler) GetColumnOptions(c *gin.Context) {
	engine, err := h.dataset(c.Request.Context())
	if err != nil {
		noData(c, err)
		return
	}
	column := c.Param("column")
	c.JSON(http.StatusOK, gin.H{
		"column":  column,
		"options": filter.Options(engine.Dataset(), column),
	})
}

// KPIResponse status totals of the filtered subset
type KPIResponse struct {
	Rows    int                         `json:"rows"`
	Empty   bool                        `json:"empty"`
	Totals  calculator.StatusTotals     `json:"totals"`
	Groups  []calculator.IndicatorGroup `json:"groups"`
	Filters []filter.Active             `json:"filters"`
}

// GetKPIs status totals over the filtered subset
// GET /api/kpis
func (h *Handler) GetKPIs(c *gin.Context) {
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	totals := calculator.Totals(v.filtered)
	filters := v.engine.Restrictions(v.selection)
	if filters == nil {
		filters = []filter.Active{}
	}
	c.JSON(http.StatusOK, KPIResponse{
		Rows:    v.filtered.Len(),
		Empty:   v.filtered.Empty(),
		Totals:  totals,
		Groups:  calculator.StatusIndicators(totals),
		Filters: filters,
	})
}

// Comparison scopes
const (
	ScopeFull     = "full"
	ScopeFiltered = "filtered"
)

// GetComparisons YTD/MTD/WTD cards. today is always the latest creation date of
// the full dataset; scope=filtered sums over the filtered subset instead.
// GET /api/comparisons?scope=
func (h *Handler) GetComparisons(c *gin.Context) {
	scope := c.DefaultQuery("scope", ScopeFull)
	if scope != ScopeFull && scope != ScopeFiltered {
		badRequest(c, "scope must be full or filtered")
		return
	}
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	today, _ := v.full.Latest()
	target := v.full
	if scope == ScopeFiltered {
		target = v.filtered
	}
	c.JSON(http.StatusOK, gin.H{
		"scope":       scope,
		"today":       today,
		"comparisons": calculator.ComparePeriods(target, today),
	})
}

// GetCharts chart series over the filtered subset
// GET /api/charts
func (h *Handler) GetCharts(c *gin.Context) {
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"empty":  v.filtered.Empty(),
		"charts": dashboard.BuildCharts(v.filtered, h.opts.Limits),
	})
}

// TableResponse capped rows of the filtered subset
type TableResponse struct {
	Columns   []string            `json:"columns"`
	Rows      []map[string]string `json:"rows"`
	Total     int                 `json:"total"`
	Truncated bool                `json:"truncated"`
}

// GetTable first rows of the filtered subset, capped by the configured row cap
// GET /api/table?limit=
func (h *Handler) GetTable(c *gin.Context) {
	limit, ok := intQuery(c, "limit", h.opts.TableRowCap)
	if !ok {
		return
	}
	if limit > h.opts.TableRowCap {
		limit = h.opts.TableRowCap
	}
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildTable(v.filtered, limit))
}

func buildTable(ds *model.Dataset, limit int) TableResponse {
	cols := lo.Filter(model.TableColumns, func(f model.Field, _ int) bool { return ds.Has(f) })
	resp := TableResponse{
		Columns: lo.Map(cols, func(f model.Field, _ int) string { return string(f) }),
		Rows:    []map[string]string{},
		Total:   ds.Len(),
	}
	n := ds.Len()
	if n > limit {
		n = limit
		resp.Truncated = true
	}
	for i := 0; i < n; i++ {
		r := &ds.Records[i]
		row := make(map[string]string, len(cols))
		for _, f := range cols {
			if f == model.FieldDataCriacao {
				row[string(f)] = r.DataCriacao.Format(time.DateOnly)
				continue
			}
			row[string(f)] = r.Text(f)
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}
