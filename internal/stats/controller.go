package stats

import "time"

// ZoomDebounce is how long the controller waits after the last zoom/pan
// gesture before committing the new range. Gestures arriving inside the
// window restart it, so a drag commits once instead of flooding the fetch
// layer.
const ZoomDebounce = 250 * time.Millisecond

// MinZoomSpanSec is the absolute floor a zoom-in may reach.
const MinZoomSpanSec = 60

// View is one concrete chart range: what to fetch and what to render.
type View struct {
	EndTime  int64 // epoch ms
	RangeSec int64
	BinSec   int64
}

// Start returns the view's start in epoch milliseconds.
func (v View) Start() int64 {
	return v.EndTime - v.RangeSec*1000
}

// RangeController owns the current chart view and translates preset picks
// and free-form pan/zoom gestures into normalized range commits. It also
// owns the request sequence counter used to discard stale fetch results.
type RangeController struct {
	view         View
	zoomLimitSec int64 // span of the last explicitly chosen preset
	preset       Preset
	custom       bool
	seq          uint64
	loaded       bool
	now          func() time.Time
}

// NewRangeController creates a controller with no selection. Callers select
// a preset before the first fetch.
func NewRangeController() *RangeController {
	return &RangeController{now: time.Now}
}

// View returns the current (endTime, rangeSec, binSec) triple.
func (c *RangeController) View() View { return c.view }

// ZoomLimit returns the span in seconds a zoom-out may not exceed.
func (c *RangeController) ZoomLimit() int64 { return c.zoomLimitSec }

// SelectionLabel returns the active preset label, or "custom" for a
// gesture-created span that matches no preset.
func (c *RangeController) SelectionLabel() string {
	if c.custom {
		return "custom"
	}
	return c.preset.Label
}

// CurrentSequence returns the sequence number a result must carry to be
// applied.
func (c *RangeController) CurrentSequence() uint64 { return c.seq }

// CancelPending invalidates the sequence counter so any in-flight result is
// discarded on arrival. Called on teardown; the network call itself is not
// aborted, only its effect on state.
func (c *RangeController) CancelPending() { c.seq++ }

// MarkLoaded records that the first fetch succeeded. Gestures arriving
// before that are ignored since there is no previous view to diff against.
func (c *RangeController) MarkLoaded() { c.loaded = true }

// Loaded reports whether a first successful load has been seen.
func (c *RangeController) Loaded() bool { return c.loaded }

// SelectPreset applies a preset immediately, with no debounce. EndTime is
// anchored to "now", or to the server's maximum available time for the
// all-data preset. Returns the new view and the sequence number for the
// resulting fetch.
func (c *RangeController) SelectPreset(p Preset, avail AvailableRange) (View, uint64) {
	span := p.Span
	endTime := NowMillis(c.now())
	if p.Span == 0 {
		if avail.Known() {
			span = (avail.Max - avail.Min) / 1000
			endTime = avail.Max
		} else {
			span = 30 * SpanDay
		}
	}
	if span < MinZoomSpanSec {
		span = MinZoomSpanSec
	}

	c.view = View{EndTime: endTime, RangeSec: span, BinSec: BinIntervalFor(span)}
	c.zoomLimitSec = span
	c.preset = p
	c.custom = false
	c.seq++
	return c.view, c.seq
}

// ApplyGesture maps a raw (startMs, endMs) pan/zoom gesture onto a candidate
// view: normalized, snapped to the active preset span when within tolerance,
// clamped to the zoom bounds, and suppressed when the result is within one
// second of the current view. It does not commit; the caller debounces and
// then calls Commit with the returned view.
func (c *RangeController) ApplyGesture(startMs, endMs int64) (View, bool) {
	if !c.loaded || c.zoomLimitSec == 0 {
		return View{}, false
	}

	startMs, endMs = NormalizeRange(startMs, endMs)
	spanSec := float64(endMs-startMs) / 1000

	// Sticky snap: drags that try to return to the selected preset's view
	// land on it exactly instead of a pixel-rounded near miss. The selection
	// may be a re-matched preset narrower than the zoom limit; a custom
	// selection (and the fixed-span-less all preset) snaps to the limit.
	target := float64(c.zoomLimitSec)
	if !c.custom && c.preset.Span != 0 {
		target = float64(c.preset.Span)
	}
	tol := float64(2)
	if t := 0.01 * float64(c.zoomLimitSec); t > tol {
		tol = t
	}
	if d := spanSec - target; d <= tol && d >= -tol {
		spanSec = target
	}

	minSpan := c.minRangeSec()
	clamped := spanSec
	if clamped < float64(minSpan) {
		clamped = float64(minSpan)
	}
	if clamped > float64(c.zoomLimitSec) {
		clamped = float64(c.zoomLimitSec)
	}

	newSpan := int64(clamped + 0.5)
	var newEnd int64
	if clamped != spanSec {
		// Clamp changed the span: anchor on the gesture's leading edge.
		newEnd = startMs + newSpan*1000
	} else {
		newEnd = endMs
	}

	dEnd := newEnd - c.view.EndTime
	if dEnd < 0 {
		dEnd = -dEnd
	}
	dSpan := newSpan - c.view.RangeSec
	if dSpan < 0 {
		dSpan = -dSpan
	}
	if dEnd < 1000 && dSpan < 1 {
		return View{}, false
	}

	return View{EndTime: newEnd, RangeSec: newSpan, BinSec: BinIntervalFor(newSpan)}, true
}

// Commit applies a debounced gesture view and returns the sequence number
// for the resulting fetch. If the committed span matches a preset within one
// second the selection switches to that preset so its button highlights;
// otherwise the selection becomes a synthetic custom span. The zoom limit is
// left at the last explicitly chosen preset either way.
func (c *RangeController) Commit(v View) (View, uint64) {
	c.view = v
	if p, ok := MatchPreset(v.RangeSec); ok {
		c.preset = p
		c.custom = false
	} else {
		c.custom = true
	}
	c.seq++
	return c.view, c.seq
}

// minRangeSec is the smallest span a zoom-in may reach: never below 60s nor
// below one seventh of the active top-level span.
func (c *RangeController) minRangeSec() int64 {
	min := c.zoomLimitSec / 7
	if min < MinZoomSpanSec {
		min = MinZoomSpanSec
	}
	if min > c.zoomLimitSec {
		min = c.zoomLimitSec
	}
	return min
}
