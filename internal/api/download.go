package api

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/willfaleixo/Dashboards-BI/internal/service/excel"
)

const (
	filteredBaseName = "dados_filtrados"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// contentDisposition attachment header with an ASCII fallback and the UTF-8 name.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > 0x7e || r < 0x20 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, url.PathEscape(name))
}

// DownloadOriginal the input file, byte for byte
// GET /api/download/original
func (h *Handler) DownloadOriginal(c *gin.Context) {
	engine, err := h.dataset(c.Request.Context())
	if err != nil {
		noData(c, err)
		return
	}
	path := engine.Dataset().Source.Path
	c.Header("Content-Disposition", contentDisposition(filepath.Base(path)))
	c.File(path)
}

// DownloadFilteredXLSX filtered subset as a single-sheet workbook
// GET /api/download/filtered.xlsx
func (h *Handler) DownloadFilteredXLSX(c *gin.Context) {
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	f, err := excel.NewExporter().Export(v.filtered)
	if err != nil {
		log.Printf("[api] export xlsx: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", contentDisposition(filteredBaseName+".xlsx"))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if _, err := f.WriteTo(c.Writer); err != nil {
		log.Printf("[api] write xlsx: %v", err)
	}
}

// DownloadFilteredCSV filtered subset, ';' separated, UTF-8 with BOM
// GET /api/download/filtered.csv
func (h *Handler) DownloadFilteredCSV(c *gin.Context) {
	v, ok := h.filteredView(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", contentDisposition(filteredBaseName+".csv"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := excel.WriteCSV(c.Writer, v.filtered); err != nil {
		log.Printf("[api] write csv: %v", err)
	}
}
