package api

import (
	"bytes"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/willfaleixo/Dashboards-BI/internal/calculator"
	"github.com/willfaleixo/Dashboards-BI/internal/dashboard"
	"github.com/willfaleixo/Dashboards-BI/internal/filter"
	"github.com/willfaleixo/Dashboards-BI/internal/importer"
)

const logoRoute = "/logo"

func (h *Handler) logoURL() string {
	if h.opts.LogoPath == "" {
		return ""
	}
	if info, err := os.Stat(h.opts.LogoPath); err != nil || info.IsDir() {
		return ""
	}
	return logoRoute
}

// Page the server-rendered dashboard. The chrome always renders; without data
// the filter and KPI sections are replaced by an error panel.
// GET /
func (h *Handler) Page(c *gin.Context) {
	sel := filter.ParseQuery(c.Request.URL.Query())
	if raw := c.Request.URL.RawQuery; raw != "" && raw != sel.Encode() {
		target := "/"
		if q := sel.Encode(); q != "" {
			target += "?" + q
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	engine, err := h.dataset(c.Request.Context())
	if err != nil {
		h.renderPage(c, http.StatusServiceUnavailable,
			dashboard.ErrorPage(h.opts.Title, h.logoURL(), importer.ErrorKind(err), err.Error()))
		return
	}

	full := engine.Dataset()
	today, _ := full.Latest()
	page := dashboard.Build(dashboard.Input{
		Title:       h.opts.Title,
		LogoURL:     h.logoURL(),
		Engine:      engine,
		Selection:   sel,
		Filtered:    engine.Apply(full, sel),
		Comparisons: calculator.ComparePeriods(full, today),
		Limits:      h.opts.Limits,
		TableCap:    h.opts.TableRowCap,
	})
	h.renderPage(c, http.StatusOK, page)
}

func (h *Handler) renderPage(c *gin.Context, status int, page *dashboard.Page) {
	var buf bytes.Buffer
	if err := dashboard.Render(&buf, page); err != nil {
		log.Printf("[api] render page: %v", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Logo serves the configured logo image
// GET /logo
func (h *Handler) Logo(c *gin.Context) {
	if h.logoURL() == "" {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(h.opts.LogoPath)
}
