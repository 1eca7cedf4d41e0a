package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides, read from the process and from config.env
const (
	EnvDataFile = "DASHBOARD_DATA_FILE"
	EnvPort     = "DASHBOARD_PORT"
	EnvCacheTTL = "DASHBOARD_CACHE_TTL"
	EnvLocale   = "DASHBOARD_LOCALE"
)

// AppConfig application configuration
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Loader    LoaderConfig    `toml:"loader"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// ServerConfig http server
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig where the input file comes from
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	// FilePath explicit input file; empty means the newest file in SearchDirs
	FilePath   string   `toml:"file_path"`
	SearchDirs []string `toml:"search_dirs"`
	IsCSV      bool     `toml:"is_csv"`
	CacheTTL   Duration `toml:"cache_ttl"`
	HistoryDB  string   `toml:"history_db"`
}

// LoaderConfig retry policy and extra date layouts
type LoaderConfig struct {
	Retries     int      `toml:"retries"`
	RetryDelay  Duration `toml:"retry_delay"`
	DateLayouts []string `toml:"date_layouts"`
}

// DashboardConfig page presentation
type DashboardConfig struct {
	Title          string `toml:"title"`
	Locale         string `toml:"locale"`
	TableRowCap    int    `toml:"table_row_cap"`
	TopFranchises  int    `toml:"top_franchises"`
	TopSalespeople int    `toml:"top_salespeople"`
	TopBrands      int    `toml:"top_brands"`
	LogoPath       string `toml:"logo_path"`
}

// Duration a time.Duration written as "10m", "3s" in config.toml
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std the duration as time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LoadConfigInfo metadata about where the configuration came from
type LoadConfigInfo struct {
	Dir           string
	PortSpecified bool
	FromFile      bool
	EnvFile       bool
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:    "data",
			SearchDirs: []string{"upload", filepath.Join("data", "uploads")},
			CacheTTL:   Duration(10 * time.Minute),
			HistoryDB:  "dashboard.db",
		},
		Loader: LoaderConfig{
			Retries:    3,
			RetryDelay: Duration(3 * time.Second),
		},
		Dashboard: DashboardConfig{
			Title:          "Dashboard de Pedidos",
			Locale:         "pt-BR",
			TableRowCap:    1000,
			TopFranchises:  15,
			TopSalespeople: 10,
			TopBrands:      10,
			LogoPath:       filepath.Join("assets", "logo.png"),
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and config.env from the executable's directory
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadFrom(exeDir)
}

// LoadFrom loads dir/config.toml, then applies dir/config.env and the process
// environment. Process variables win over the env file. A missing file means defaults.
func LoadFrom(dir string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Dir: dir}
	config := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	switch {
	case err == nil:
		info.FromFile = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse config.toml: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, info, err
	}

	fileEnv, err := godotenv.Read(filepath.Join(dir, "config.env"))
	switch {
	case err == nil:
		info.EnvFile = true
	case os.IsNotExist(err):
		fileEnv = map[string]string{}
	default:
		return nil, info, fmt.Errorf("parse config.env: %w", err)
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}
	if err := applyEnv(config, &info, lookup); err != nil {
		return nil, info, err
	}

	config.normalize()
	return config, info, nil
}

func applyEnv(config *AppConfig, info *LoadConfigInfo, lookup func(string) string) error {
	if v := lookup(EnvDataFile); v != "" {
		config.Data.FilePath = v
	}
	if v := lookup(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := lookup(EnvCacheTTL); v != "" {
		var ttl Duration
		if err := ttl.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		config.Data.CacheTTL = ttl
	}
	if v := lookup(EnvLocale); v != "" {
		config.Dashboard.Locale = v
	}
	return nil
}

// normalize replaces unusable values with defaults
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		log.Printf("[config] invalid port %d, using %d", c.Server.Port, def.Server.Port)
		c.Server.Port = def.Server.Port
	}
	if c.Data.CacheTTL <= 0 {
		c.Data.CacheTTL = def.Data.CacheTTL
	}
	if c.Data.HistoryDB == "" {
		c.Data.HistoryDB = def.Data.HistoryDB
	}
	if c.Loader.Retries <= 0 {
		c.Loader.Retries = def.Loader.Retries
	}
	if c.Loader.RetryDelay <= 0 {
		c.Loader.RetryDelay = def.Loader.RetryDelay
	}
	if c.Dashboard.Locale == "" {
		c.Dashboard.Locale = def.Dashboard.Locale
	}
	if c.Dashboard.TableRowCap <= 0 {
		c.Dashboard.TableRowCap = def.Dashboard.TableRowCap
	}
	if c.Dashboard.TopFranchises <= 0 {
		c.Dashboard.TopFranchises = def.Dashboard.TopFranchises
	}
	if c.Dashboard.TopSalespeople <= 0 {
		c.Dashboard.TopSalespeople = def.Dashboard.TopSalespeople
	}
	if c.Dashboard.TopBrands <= 0 {
		c.Dashboard.TopBrands = def.Dashboard.TopBrands
	}
}

// ResolvePath makes p absolute against base unless it already is.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// EnsureDataDir creates the data directory and its uploads folder under base
func EnsureDataDir(config *AppConfig, base string) (string, error) {
	dataDir := ResolvePath(base, config.Data.DataDir)
	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// SearchDirs absolute search directories, in priority order
func SearchDirs(config *AppConfig, base string) []string {
	dirs := make([]string, 0, len(config.Data.SearchDirs))
	for _, d := range config.Data.SearchDirs {
		dirs = append(dirs, ResolvePath(base, d))
	}
	return dirs
}

// HistoryPath location of the SQLite load history
func HistoryPath(config *AppConfig, base string) string {
	if filepath.IsAbs(config.Data.HistoryDB) {
		return config.Data.HistoryDB
	}
	return filepath.Join(ResolvePath(base, config.Data.DataDir), config.Data.HistoryDB)
}
