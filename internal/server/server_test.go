package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfaleixo/Dashboards-BI/internal/config"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	base := t.TempDir()
	uploads := filepath.Join(base, "upload")
	require.NoError(t, os.MkdirAll(uploads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "pedidos.csv"), []byte(
		"Order Creation Date: Date;STATUS;Orders - TOTAL Orders Qty;Canal\n"+
			"2024-03-01;Faturado;10;Varejo\n"+
			"2024-03-05;Cancelado;2;Atacado\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Data.IsCSV = true
	s := NewServer(cfg, base)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, base
}

func TestServerRoutes(t *testing.T) {
	s, base := newTestServer(t)
	require.NotNil(t, s.GetStore())
	assert.FileExists(t, filepath.Join(base, "data", "dashboard.db"))
	assert.DirExists(t, filepath.Join(base, "data", "uploads"))
	assert.Equal(t, ":20262", s.Addr())

	s.Warmup(context.Background())
	logs, err := s.GetStore().ListLoadLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard de Pedidos")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/kpis", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/kpis?canal=Varejo", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rows":1`)
}
