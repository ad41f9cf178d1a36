package stats

import "sort"

// Point is one (timestamp, value) pair in a merged series.
type Point struct {
	Timestamp int64 // epoch ms
	Value     float64
}

// Series maps each category to its time-ordered points.
type Series map[string][]Point

// Merge folds all cached windows into per-category series covering the union
// of their bins. When two windows cover the same bin timestamp the values are
// summed, not replaced: downstream Y-axis scaling assumes additive
// composition of overlapping windows.
func Merge(windows []*Window) Series {
	acc := make(map[string]map[int64]float64)
	for _, w := range windows {
		for category, counts := range w.Counts {
			byTime := acc[category]
			if byTime == nil {
				byTime = make(map[int64]float64)
				acc[category] = byTime
			}
			for i, ts := range w.Bins {
				if i < len(counts) {
					byTime[ts] += counts[i]
				}
			}
		}
	}

	series := make(Series, len(acc))
	for category, byTime := range acc {
		points := make([]Point, 0, len(byTime))
		for ts, v := range byTime {
			points = append(points, Point{Timestamp: ts, Value: v})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Timestamp < points[j].Timestamp
		})
		series[category] = points
	}
	return series
}

// Visible restricts a merged series to the [startMs, endMs] interval.
// Categories with no points in the interval are dropped.
func Visible(series Series, startMs, endMs int64) Series {
	out := make(Series, len(series))
	for category, points := range series {
		lo := sort.Search(len(points), func(i int) bool {
			return points[i].Timestamp >= startMs
		})
		hi := sort.Search(len(points), func(i int) bool {
			return points[i].Timestamp > endMs
		})
		if lo < hi {
			visible := make([]Point, hi-lo)
			copy(visible, points[lo:hi])
			out[category] = visible
		}
	}
	return out
}

// Categories returns the category names of a series in sorted order, for
// stable legend and color assignment.
func (s Series) Categories() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxValue returns the largest value across all categories, or 0 for an
// empty series.
func (s Series) MaxValue() float64 {
	var max float64
	for _, points := range s {
		for _, p := range points {
			if p.Value > max {
				max = p.Value
			}
		}
	}
	return max
}
