package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

func newDataset(src model.SourceInfo) *model.Dataset {
	ds := model.NewDataset([]model.Record{{StatusKPI: "Faturado"}}, []model.Field{model.FieldStatusKPI}, nil)
	ds.Source = src
	return ds
}

// TestDatasetCacheTTL entries expire after the TTL
func TestDatasetCacheTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewDatasetCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Put("orders.xlsx", newDataset(model.SourceInfo{}))
	if _, ok := c.Get("orders.xlsx"); !ok {
		t.Fatal("fresh entry should be served")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("orders.xlsx"); ok {
		t.Fatal("expired entry should not be served")
	}
	if c.Count() != 0 {
		t.Errorf("expired entry should be dropped, count=%d", c.Count())
	}
}

// TestDatasetCacheInvalidateAndClear explicit reload path
func TestDatasetCacheInvalidateAndClear(t *testing.T) {
	c := NewDatasetCache(0)
	if c.TTL() != DefaultTTL {
		t.Errorf("TTL = %v, want %v", c.TTL(), DefaultTTL)
	}

	c.Put("a.xlsx", newDataset(model.SourceInfo{}))
	c.Put("b.csv", newDataset(model.SourceInfo{}))
	c.Invalidate("a.xlsx")
	if _, ok := c.Get("a.xlsx"); ok {
		t.Error("invalidated entry still served")
	}
	if _, ok := c.Get("b.csv"); !ok {
		t.Error("other entry should survive Invalidate")
	}
	c.Clear()
	if c.Count() != 0 {
		t.Errorf("Clear left %d entries", c.Count())
	}
}

// TestDatasetCacheFileChanged a rewritten file is reloaded before the TTL
func TestDatasetCacheFileChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("a;b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	c := NewDatasetCache(time.Hour)
	c.Put(path, newDataset(model.SourceInfo{Path: path, Size: info.Size(), ModTime: info.ModTime()}))
	if _, ok := c.Get(path); !ok {
		t.Fatal("unchanged file should be served from cache")
	}

	if err := os.WriteFile(path, []byte("a;b;c\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if _, ok := c.Get(path); ok {
		t.Fatal("changed file must not be served from cache")
	}
}

// TestDatasetCacheGetOrLoad concurrent callers trigger a single load
func TestDatasetCacheGetOrLoad(t *testing.T) {
	c := NewDatasetCache(time.Hour)

	var mu sync.Mutex
	loads := 0
	load := func(context.Context) (*model.Dataset, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return newDataset(model.SourceInfo{}), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := c.GetOrLoad(context.Background(), "orders.xlsx", load); err != nil {
				t.Errorf("GetOrLoad failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if _, cached, _ := c.GetOrLoad(context.Background(), "orders.xlsx", load); !cached {
		t.Error("second call should hit the cache")
	}
}

// TestDatasetCacheLoadError errors are not cached
func TestDatasetCacheLoadError(t *testing.T) {
	c := NewDatasetCache(time.Hour)
	boom := errors.New("boom")

	_, _, err := c.GetOrLoad(context.Background(), "x.xlsx", func(context.Context) (*model.Dataset, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Count() != 0 {
		t.Errorf("failed load must not be cached")
	}
}
