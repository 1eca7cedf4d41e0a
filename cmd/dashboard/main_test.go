package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/willfaleixo/Dashboards-BI/internal/config"
)

func TestAbsPath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}

	got := absPath(filepath.Join("upload", "pedidos.xlsx"))
	want := filepath.Join(wd, "upload", "pedidos.xlsx")
	if got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
	// the server resolves relative paths against the executable dir; an absolute flag value must survive
	if resolved := config.ResolvePath("/opt/dashboard", got); resolved != want {
		t.Fatalf("absolute flag path rewritten to %s", resolved)
	}

	abs := filepath.Join(wd, "x.csv")
	if absPath(abs) != abs {
		t.Fatalf("absolute paths must be kept")
	}
}
