package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willfaleixo/Dashboards-BI/internal/importer"
)

// StatusResponse state of the loaded dataset
type StatusResponse struct {
	Loaded      bool                 `json:"loaded"`
	Rows        int                  `json:"rows"`
	File        string               `json:"file,omitempty"`
	LastUpdated *time.Time           `json:"lastUpdated,omitempty"` // input file mtime
	LoadedAt    *time.Time           `json:"loadedAt,omitempty"`
	Missing     []string             `json:"missing"`
	ErrorKind   string               `json:"errorKind,omitempty"`
	Error       string               `json:"error,omitempty"`
	LastLoad    *importer.LoadReport `json:"lastLoad,omitempty"`
}

// GetStatus reports whether a dataset is available
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	engine, err := h.dataset(c.Request.Context())
	report, _ := h.lastLoad()

	resp := StatusResponse{Missing: []string{}, LastLoad: report}
	if err != nil {
		resp.ErrorKind = importer.ErrorKind(err)
		resp.Error = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	ds := engine.Dataset()
	resp.Loaded = true
	resp.Rows = ds.Len()
	resp.File = ds.Source.Path
	if !ds.Source.ModTime.IsZero() {
		mtime := ds.Source.ModTime
		resp.LastUpdated = &mtime
	}
	if at, ok := h.cache.LoadedAt(ds.Source.Path); ok {
		resp.LoadedAt = &at
	}
	for _, f := range ds.Missing {
		resp.Missing = append(resp.Missing, string(f))
	}
	c.JSON(http.StatusOK, resp)
}

// ListLoads load history, newest first
// GET /api/loads?limit=
func (h *Handler) ListLoads(c *gin.Context) {
	limit, ok := intQuery(c, "limit", 20)
	if !ok {
		return
	}
	logs, err := h.coord.History(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read load history"})
		return
	}
	if logs == nil {
		c.JSON(http.StatusOK, gin.H{"loads": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loads": logs})
}

// Reload clears the cache and loads the input file again
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	h.reset()
	log.Printf("[api] cache cleared, reloading")

	engine, err := h.dataset(c.Request.Context())
	if c.Query("redirect") == "1" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	report, _ := h.lastLoad()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  err.Error(),
			"kind":   importer.ErrorKind(err),
			"report": report,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loaded": true,
		"rows":   engine.Dataset().Len(),
		"report": report,
	})
}

// intQuery reads a positive integer parameter; it answers 400 itself when the value is invalid.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		badRequest(c, key+" must be a positive integer")
		return 0, false
	}
	return n, true
}
