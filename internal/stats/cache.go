package stats

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
)

// MaxCachedWindows bounds the number of windows kept in memory.
const MaxCachedWindows = 20

// Source fetches a statistics window from the upstream API.
type Source interface {
	FetchWindow(ctx context.Context, key WindowKey) (*Window, error)
}

type cacheEntry struct {
	window  *Window
	loadSeq uint64 // monotonically increasing load order
	loaded  time.Time
}

// WindowCache is a bounded cache of fetched windows keyed by their rounded
// (endTime, rangeSec, binSec) triple. Concurrent fetches for the same key
// collapse to a single network call; entries are immutable and evicted in
// least-recently-loaded order once the bound is exceeded.
type WindowCache struct {
	source Source

	mu        sync.Mutex
	entries   map[WindowKey]*cacheEntry
	loadSeq   uint64
	available AvailableRange
	maxSize   int

	flight singleflight.Group
	clock  func() time.Time
}

// NewWindowCache creates a cache over the given source with the default
// size bound.
func NewWindowCache(source Source) *WindowCache {
	return &WindowCache{
		source:  source,
		entries: make(map[WindowKey]*cacheEntry),
		maxSize: MaxCachedWindows,
		clock:   time.Now,
	}
}

// Fetch returns the window for the rounded triple. Cache hits return
// immediately with no network access. A miss with a fetch already in flight
// for the same key joins that fetch rather than issuing a duplicate call.
// Failed fetches cache nothing; the in-flight slot is always released when
// the fetch settles.
func (c *WindowCache) Fetch(ctx context.Context, endTimeMs, rangeSec, binSec int64) (*Window, error) {
	key := NewWindowKey(endTimeMs, rangeSec, binSec)

	if w, ok := c.lookup(key); ok {
		return w, nil
	}

	v, err, shared := c.flight.Do(key.String(), func() (interface{}, error) {
		// A coalesced caller may arrive after the leader already stored
		// the window; serve it from the cache instead of refetching.
		if w, ok := c.lookup(key); ok {
			return w, nil
		}

		w, err := c.source.FetchWindow(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := w.Validate(); err != nil {
			return nil, err
		}
		c.store(key, w)
		return w, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("window fetch coalesced", "key", key.String())
	}
	return v.(*Window), nil
}

// Has reports whether a window for the rounded triple is cached.
func (c *WindowCache) Has(endTimeMs, rangeSec, binSec int64) bool {
	_, ok := c.lookup(NewWindowKey(endTimeMs, rangeSec, binSec))
	return ok
}

// Len returns the number of cached windows.
func (c *WindowCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Windows returns a snapshot of all cached windows in load order.
func (c *WindowCache) Windows() []*Window {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]*cacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].loadSeq > entries[j].loadSeq; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}

	windows := make([]*Window, len(entries))
	for i, e := range entries {
		windows[i] = e.window
	}
	return windows
}

// Available returns the last known server-declared data bounds.
func (c *WindowCache) Available() AvailableRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

func (c *WindowCache) lookup(key WindowKey) (*Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.window, true
	}
	return nil, false
}

func (c *WindowCache) store(key WindowKey, w *Window) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadSeq++
	c.entries[key] = &cacheEntry{window: w, loadSeq: c.loadSeq, loaded: c.clock()}
	c.available = c.available.merge(w.Meta)

	// One eviction per insertion that breaches the bound.
	for len(c.entries) > c.maxSize {
		var (
			oldestKey WindowKey
			oldestSeq uint64
			found     bool
		)
		for k, e := range c.entries {
			if !found || e.loadSeq < oldestSeq {
				oldestKey, oldestSeq, found = k, e.loadSeq, true
			}
		}
		delete(c.entries, oldestKey)
		logger.Debug("evicted oldest window", "key", oldestKey.String())
	}
}
