package stats

import "fmt"

// WindowKey identifies one fetched slice of time-series data. EndTime is
// rounded down to the bin boundary so that near-identical gestures map to
// the same cache entry.
type WindowKey struct {
	EndTime  int64 // epoch ms, bin-aligned
	RangeSec int64
	BinSec   int64
}

// NewWindowKey builds a key from a raw (endTime, rangeSec, binSec) triple.
func NewWindowKey(endTimeMs, rangeSec, binSec int64) WindowKey {
	if binMs := binSec * 1000; binMs > 0 {
		endTimeMs -= endTimeMs % binMs
	}
	return WindowKey{EndTime: endTimeMs, RangeSec: rangeSec, BinSec: binSec}
}

// StartTime returns the window's start in epoch milliseconds.
func (k WindowKey) StartTime() int64 {
	return k.EndTime - k.RangeSec*1000
}

// String renders the key in a stable form usable for request coalescing.
func (k WindowKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.EndTime, k.RangeSec, k.BinSec)
}

// WindowMeta carries server-reported metadata observed in one fetch.
type WindowMeta struct {
	AvailableMin int64 // epoch ms, 0 = not reported
	AvailableMax int64
	Types        []string
}

// Window holds one fetched, normalized statistics window. Windows are
// immutable once stored in the cache.
type Window struct {
	Key    WindowKey
	Bins   []int64              // epoch ms, strictly increasing, spaced BinSec
	Counts map[string][]float64 // parallel to Bins for every category
	Total  []float64
	Meta   WindowMeta
}

// Validate checks the structural invariants a window must satisfy before it
// may enter the cache.
func (w *Window) Validate() error {
	if w.Bins == nil {
		return fmt.Errorf("window %s: missing bin sequence", w.Key)
	}
	for category, counts := range w.Counts {
		if len(counts) != len(w.Bins) {
			return fmt.Errorf("window %s: category %q has %d counts for %d bins",
				w.Key, category, len(counts), len(w.Bins))
		}
	}
	return nil
}

// AvailableRange is the server-declared [min, max] timestamp bounds across
// all data, in epoch milliseconds. Zero fields mean unknown.
type AvailableRange struct {
	Min int64
	Max int64
}

// Known reports whether both bounds have been observed.
func (r AvailableRange) Known() bool {
	return r.Min != 0 && r.Max != 0
}

// merge folds newer metadata into the range, preferring reported values.
func (r AvailableRange) merge(meta WindowMeta) AvailableRange {
	if meta.AvailableMin != 0 {
		r.Min = meta.AvailableMin
	}
	if meta.AvailableMax != 0 {
		r.Max = meta.AvailableMax
	}
	return r
}
