package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, info, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if info.FromFile || info.EnvFile || info.PortSpecified {
		t.Fatalf("nothing should be read from disk: %+v", info)
	}
	if cfg.Server.Port != 20262 || cfg.Data.CacheTTL.Std() != 10*time.Minute || cfg.Loader.Retries != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Dashboard.TableRowCap != 1000 || cfg.Dashboard.TopFranchises != 15 || cfg.Dashboard.Locale != "pt-BR" {
		t.Fatalf("unexpected dashboard defaults: %+v", cfg.Dashboard)
	}
}

func TestLoadFrom_TomlAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[server]
port = 8088

[data]
file_path = "orders.xlsx"
cache_ttl = "90s"

[loader]
retries = 5
retry_delay = "250ms"
date_layouts = ["02.01.2006"]

[dashboard]
table_row_cap = -1
locale = "en-US"
`)
	writeFile(t, dir, "config.env", "DASHBOARD_DATA_FILE=/srv/latest.csv\nDASHBOARD_CACHE_TTL=2m\n")

	cfg, info, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !info.FromFile || !info.EnvFile || !info.PortSpecified {
		t.Fatalf("unexpected info: %+v", info)
	}
	if cfg.Server.Port != 8088 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Data.FilePath != "/srv/latest.csv" {
		t.Fatalf("env file must override file_path, got %q", cfg.Data.FilePath)
	}
	if cfg.Data.CacheTTL.Std() != 2*time.Minute {
		t.Fatalf("cache ttl = %s", cfg.Data.CacheTTL.Std())
	}
	if cfg.Loader.Retries != 5 || cfg.Loader.RetryDelay.Std() != 250*time.Millisecond {
		t.Fatalf("loader = %+v", cfg.Loader)
	}
	if len(cfg.Loader.DateLayouts) != 1 || cfg.Loader.DateLayouts[0] != "02.01.2006" {
		t.Fatalf("date layouts = %v", cfg.Loader.DateLayouts)
	}
	if cfg.Dashboard.TableRowCap != 1000 {
		t.Fatalf("invalid row cap must fall back to the default, got %d", cfg.Dashboard.TableRowCap)
	}
	if cfg.Dashboard.Locale != "en-US" {
		t.Fatalf("locale = %q", cfg.Dashboard.Locale)
	}
}

func TestLoadFrom_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.env", "DASHBOARD_PORT=9000\n")
	t.Setenv(EnvPort, "9100")

	cfg, _, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("process environment must win, got %d", cfg.Server.Port)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", "[data]\ncache_ttl = \"soon\"\n")
	if _, _, err := LoadFrom(dir); err == nil {
		t.Fatalf("invalid duration must fail")
	}

	dir = t.TempDir()
	writeFile(t, dir, "config.env", "DASHBOARD_PORT=http\n")
	if _, _, err := LoadFrom(dir); err == nil {
		t.Fatalf("invalid port must fail")
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	base := filepath.Join(string(filepath.Separator), "opt", "dash")
	if got := HistoryPath(cfg, base); got != filepath.Join(base, "data", "dashboard.db") {
		t.Fatalf("HistoryPath = %s", got)
	}
	dirs := SearchDirs(cfg, base)
	if len(dirs) != 2 || dirs[0] != filepath.Join(base, "upload") {
		t.Fatalf("SearchDirs = %v", dirs)
	}
	abs := filepath.Join(base, "x.csv")
	if ResolvePath("/elsewhere", abs) != abs {
		t.Fatalf("absolute paths must be kept")
	}
}
