package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willfaleixo/Dashboards-BI/internal/api"
	"github.com/willfaleixo/Dashboards-BI/internal/config"
	"github.com/willfaleixo/Dashboards-BI/internal/dashboard"
	"github.com/willfaleixo/Dashboards-BI/internal/importer"
	"github.com/willfaleixo/Dashboards-BI/internal/loader"
	"github.com/willfaleixo/Dashboards-BI/internal/parser"
	cache "github.com/willfaleixo/Dashboards-BI/internal/service/store"
	"github.com/willfaleixo/Dashboards-BI/internal/store"
)

// Server HTTP server of the dashboard
type Server struct {
	router  *gin.Engine
	store   *store.Store
	handler *api.Handler
	httpSrv *http.Server
}

// NewServer wires the history store, the load pipeline and the handlers.
// Relative paths in cfg are resolved against baseDir.
func NewServer(cfg *config.AppConfig, baseDir string) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if _, err := config.EnsureDataDir(cfg, baseDir); err != nil {
		log.Printf("[server] create data dir: %v", err)
	}

	// the dashboard still works without history
	historyPath := config.HistoryPath(cfg, baseDir)
	st, err := store.New(historyPath)
	if err != nil {
		log.Printf("[server] load history disabled (%s): %v", historyPath, err)
		st = nil
	}

	coord := importer.NewCoordinator(st,
		loader.New(loader.Options{
			Retries:    cfg.Loader.Retries,
			RetryDelay: cfg.Loader.RetryDelay.Std(),
		}),
		parser.NewCleaner(parser.Options{
			Locale:      cfg.Dashboard.Locale,
			DateLayouts: cfg.Loader.DateLayouts,
		}),
	)

	h := api.NewHandler(coord, cache.NewDatasetCache(cfg.Data.CacheTTL.Std()), api.Options{
		FilePath:    config.ResolvePath(baseDir, cfg.Data.FilePath),
		SearchDirs:  config.SearchDirs(cfg, baseDir),
		ForceCSV:    cfg.Data.IsCSV,
		Progress:    logProgress,
		Title:       cfg.Dashboard.Title,
		LogoPath:    config.ResolvePath(baseDir, cfg.Dashboard.LogoPath),
		TableRowCap: cfg.Dashboard.TableRowCap,
		Limits: dashboard.Limits{
			Franchises:  cfg.Dashboard.TopFranchises,
			Salespeople: cfg.Dashboard.TopSalespeople,
			Brands:      cfg.Dashboard.TopBrands,
		},
	})

	s := &Server{
		router:  gin.Default(),
		store:   st,
		handler: h,
	}
	s.setupRoutes()
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func logProgress(e importer.ProgressEvent) {
	log.Printf("[loader] %3d%% %s: %s", e.Percent, e.Stage, e.Message)
}

// setupRoutes registers middleware, the API and the page
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.handler.RegisterRoutes(s.router.Group("/api"))
	s.handler.RegisterPages(s.router)
}

// Handler the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Warmup loads the dataset once so the first page view is fast.
// Failures are only logged; the page reports them on every request.
func (s *Server) Warmup(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/api/status", nil)
	if err != nil {
		return
	}
	rec := &discardWriter{header: http.Header{}}
	s.router.ServeHTTP(rec, req)
}

// Addr listen address
func (s *Server) Addr() string {
	return s.httpSrv.Addr
}

// Run serves until Shutdown is called
func (s *Server) Run() error {
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", s.httpSrv.Addr, err)
	}
	return nil
}

// Shutdown stops the listener and closes the history store
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// GetStore history store, nil when disabled (for tests)
func (s *Server) GetStore() *store.Store {
	return s.store
}

type discardWriter struct {
	header http.Header
}

func (w *discardWriter) Header() http.Header         { return w.header }
func (w *discardWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w *discardWriter) WriteHeader(int)             {}
