package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/willfaleixo/Dashboards-BI/internal/config"
	"github.com/willfaleixo/Dashboards-BI/internal/server"
	"github.com/willfaleixo/Dashboards-BI/internal/util"
)

var (
	port      = flag.Int("port", 0, "server port (config.toml wins; only used when port is not set there)")
	devMode   = flag.Bool("dev", false, "development mode")
	dataFile  = flag.String("data", "", "input file (.xlsx or .csv), overrides discovery")
	dataDir   = flag.String("dataDir", "", "data directory (overrides config file)")
	noBrowser = flag.Bool("no-browser", false, "do not open the browser")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Dashboards BI - Pedidos")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("[config] load failed, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{Dir: "."}
	}

	// flags override the configuration
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataFile != "" {
		cfg.Data.FilePath = absPath(*dataFile)
	}
	if *dataDir != "" {
		cfg.Data.DataDir = absPath(*dataDir)
	}
	if *noBrowser {
		cfg.Server.OpenBrowser = false
	}
	if free := util.FindAvailablePort(cfg.Server.Port); free != 0 && free != cfg.Server.Port {
		log.Printf("port %d is busy, using %d", cfg.Server.Port, free)
		cfg.Server.Port = free
	}

	srv := server.NewServer(cfg, info.Dir)
	url := util.LocalURL(cfg.Server.Port)

	go func() {
		fmt.Printf("listening on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	srv.Warmup(ctx)
	cancel()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("could not open a browser, visit %s\n", url)
		}
	} else {
		fmt.Printf("dashboard at %s\n", url)
	}

	fmt.Println("\nPress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// absPath resolves a command-line path against the working directory;
// paths from config.toml stay relative to the executable.
func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
