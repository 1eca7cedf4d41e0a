package api

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/willfaleixo/Dashboards-BI/internal/dashboard"
	"github.com/willfaleixo/Dashboards-BI/internal/filter"
	"github.com/willfaleixo/Dashboards-BI/internal/importer"
	"github.com/willfaleixo/Dashboards-BI/internal/loader"
	"github.com/willfaleixo/Dashboards-BI/internal/model"
	"github.com/willfaleixo/Dashboards-BI/internal/service/store"
)

// Options where data comes from and how the dashboard presents it
type Options struct {
	// FilePath explicit input file; empty means discovery in SearchDirs
	FilePath   string
	SearchDirs []string
	ForceCSV   bool
	// Progress receives load progress; optional
	Progress func(importer.ProgressEvent)

	Title       string
	LogoPath    string
	TableRowCap int
	Limits      dashboard.Limits
}

// Handler HTTP handlers of the dashboard
type Handler struct {
	coord *importer.Coordinator
	cache *store.DatasetCache
	opts  Options

	mu      sync.Mutex
	engine  *filter.Engine
	last    *importer.LoadReport
	lastErr error
}

// NewHandler creates the handler
func NewHandler(coord *importer.Coordinator, cache *store.DatasetCache, opts Options) *Handler {
	if opts.TableRowCap <= 0 {
		opts.TableRowCap = 1000
	}
	if opts.Title == "" {
		opts.Title = "Dashboard de Pedidos"
	}
	return &Handler{coord: coord, cache: cache, opts: opts}
}

// RegisterRoutes registers the /api routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// state of the loaded dataset
	router.GET("/status", h.GetStatus)
	router.GET("/loads", h.ListLoads)
	router.POST("/reload", h.Reload)

	// filter choices
	router.GET("/options", h.ListOptions)
	router.GET("/options/:column", h.GetColumnOptions)

	// aggregates over the filtered subset
	router.GET("/kpis", h.GetKPIs)
	router.GET("/comparisons", h.GetComparisons)
	router.GET("/charts", h.GetCharts)
	router.GET("/table", h.GetTable)

	// downloads
	router.GET("/download/original", h.DownloadOriginal)
	router.GET("/download/filtered.xlsx", h.DownloadFilteredXLSX)
	router.GET("/download/filtered.csv", h.DownloadFilteredCSV)
}

// RegisterPages registers the server-rendered page and the logo
func (h *Handler) RegisterPages(router gin.IRouter) {
	router.GET("/", h.Page)
	router.GET("/logo", h.Logo)
}

// sourcePath picks the input file: the configured one, else the newest file in
// the search directories, else the last file that loaded successfully.
func (h *Handler) sourcePath() (string, error) {
	if h.opts.FilePath != "" {
		return h.opts.FilePath, nil
	}
	path, err := loader.Discover(h.opts.SearchDirs)
	if err == nil {
		return path, nil
	}
	if last := h.coord.LastDataFile(); last != "" {
		if _, statErr := os.Stat(last); statErr == nil {
			return last, nil
		}
	}
	return "", err
}

// dataset returns the filter engine of the current dataset, loading it when the cache is cold.
func (h *Handler) dataset(ctx context.Context) (*filter.Engine, error) {
	path, err := h.sourcePath()
	if err != nil {
		h.remember(nil, err)
		return nil, err
	}

	ds, _, err := h.cache.GetOrLoad(ctx, path, func(ctx context.Context) (*model.Dataset, error) {
		ds, report, err := h.coord.Load(ctx, importer.LoadOptions{
			FilePath: path,
			Kind:     loader.KindFor(path, h.opts.ForceCSV),
			Progress: h.opts.Progress,
		})
		h.remember(report, err)
		return ds, err
	})
	if err != nil {
		h.remember(nil, err)
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastErr = nil
	if h.engine == nil || h.engine.Dataset() != ds {
		h.engine = filter.NewEngine(ds)
	}
	return h.engine, nil
}

func (h *Handler) remember(report *importer.LoadReport, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if report != nil {
		h.last = report
	}
	h.lastErr = err
}

func (h *Handler) lastLoad() (*importer.LoadReport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.lastErr
}

func (h *Handler) reset() {
	h.cache.Clear()
	h.mu.Lock()
	h.engine = nil
	h.mu.Unlock()
}

// view one filtered request
type view struct {
	engine    *filter.Engine
	full      *model.Dataset
	selection filter.Selection
	filtered  *model.Dataset
}

// filteredView loads the dataset and applies the query's selection.
// It answers 503 itself when no dataset is available.
func (h *Handler) filteredView(c *gin.Context) (*view, bool) {
	engine, err := h.dataset(c.Request.Context())
	if err != nil {
		noData(c, err)
		return nil, false
	}
	sel := filter.ParseQuery(c.Request.URL.Query())
	full := engine.Dataset()
	return &view{
		engine:    engine,
		full:      full,
		selection: sel,
		filtered:  engine.Apply(full, sel),
	}, true
}

// kindBadRequest error kind of rejected query parameters
const kindBadRequest = "bad_request"

func noData(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": err.Error(),
		"kind":  importer.ErrorKind(err),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": msg,
		"kind":  kindBadRequest,
	})
}
