// Package stats provides the time-window data cache and chart range
// controller behind the access statistics chart.
package stats

import "time"

// Span constants in seconds.
const (
	SpanHour = 3600
	SpanDay  = 86400
)

// Preset is a named, fixed time span offered as a one-click range selection.
// A zero Span means "all available data"; its effective span is derived from
// the server-reported available range at selection time.
type Preset struct {
	Label string
	Span  int64 // seconds, 0 = all
}

// Presets lists the selectable ranges in display order.
var Presets = []Preset{
	{Label: "1h", Span: SpanHour},
	{Label: "1d", Span: SpanDay},
	{Label: "7d", Span: 7 * SpanDay},
	{Label: "30d", Span: 30 * SpanDay},
	{Label: "all", Span: 0},
}

// PresetMatchToleranceSec is how close a committed span must be to a preset
// span to re-activate that preset after a zoom gesture.
const PresetMatchToleranceSec = 1

// MatchPreset returns the fixed preset whose span is within
// PresetMatchToleranceSec of spanSec.
func MatchPreset(spanSec int64) (Preset, bool) {
	for _, p := range Presets {
		if p.Span == 0 {
			continue
		}
		d := spanSec - p.Span
		if d < 0 {
			d = -d
		}
		if d <= PresetMatchToleranceSec {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetByLabel looks up a preset by its display label.
func PresetByLabel(label string) (Preset, bool) {
	for _, p := range Presets {
		if p.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// NormalizeRange orders a raw (start, end) millisecond pair so start <= end.
func NormalizeRange(startMs, endMs int64) (int64, int64) {
	if startMs > endMs {
		return endMs, startMs
	}
	return startMs, endMs
}

// BinIntervalFor chooses the bin resolution in seconds for a span. The
// thresholds mirror the server's aggregation granularity; they must stay in
// lockstep or bins will not align.
func BinIntervalFor(spanSec int64) int64 {
	switch {
	case spanSec <= 6*SpanHour:
		return 60
	case spanSec <= 3*SpanDay:
		return 5 * 60
	case spanSec <= 14*SpanDay:
		return 15 * 60
	case spanSec <= 60*SpanDay:
		return SpanHour
	default:
		return 4 * SpanHour
	}
}

// NowMillis returns t as epoch milliseconds.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}
