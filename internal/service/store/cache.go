package store

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
)

// DefaultTTL how long a loaded dataset is served before the file is read again
const DefaultTTL = 10 * time.Minute

type cacheEntry struct {
	dataset    *model.Dataset
	loadedAt   time.Time
	expiration time.Time
}

// DatasetCache keeps canonical datasets keyed by input path.
// An entry is served while it is younger than the TTL and the file's size and
// modification time still match the dataset's source signature.
// Cached datasets are shared read-only between requests.
type DatasetCache struct {
	mu      sync.RWMutex
	loadMu  sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration

	now  func() time.Time
	stat func(path string) (os.FileInfo, error)
}

// NewDatasetCache creates a cache; ttl <= 0 means DefaultTTL.
func NewDatasetCache(ttl time.Duration) *DatasetCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DatasetCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
		stat:    os.Stat,
	}
}

// TTL configured lifetime
func (c *DatasetCache) TTL() time.Duration { return c.ttl }

// Get returns the cached dataset for path when it is still valid.
func (c *DatasetCache) Get(path string) (*model.Dataset, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiration) || c.changedOnDisk(path, entry.dataset.Source) {
		c.Invalidate(path)
		return nil, false
	}
	return entry.dataset, true
}

// LoadedAt returns when the entry for path was stored.
func (c *DatasetCache) LoadedAt(path string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	return entry.loadedAt, ok
}

// Put stores ds under path
func (c *DatasetCache) Put(path string, ds *model.Dataset) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{
		dataset:    ds,
		loadedAt:   now,
		expiration: now.Add(c.ttl),
	}
}

// Invalidate drops the entry for path
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear drops every entry
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Count number of entries, expired ones included
func (c *DatasetCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrLoad returns the cached dataset or calls load and stores its result.
// Loads are serialised so concurrent requests read the file once. Errors are not cached.
func (c *DatasetCache) GetOrLoad(ctx context.Context, path string, load func(ctx context.Context) (*model.Dataset, error)) (ds *model.Dataset, cached bool, err error) {
	if ds, ok := c.Get(path); ok {
		return ds, true, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if ds, ok := c.Get(path); ok {
		return ds, true, nil
	}
	ds, err = load(ctx)
	if err != nil {
		return nil, false, err
	}
	c.Put(path, ds)
	return ds, false, nil
}

func (c *DatasetCache) changedOnDisk(path string, src model.SourceInfo) bool {
	if src.ModTime.IsZero() {
		return false
	}
	info, err := c.stat(path)
	if err != nil {
		return true
	}
	return info.Size() != src.Size || !info.ModTime().Equal(src.ModTime)
}
