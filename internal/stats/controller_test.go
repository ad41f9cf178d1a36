package stats

import (
	"testing"
	"time"
)

var testNow = time.UnixMilli(1_700_000_000_000)

func newTestController() *RangeController {
	c := NewRangeController()
	c.now = func() time.Time { return testNow }
	return c
}

func selectAndLoad(t *testing.T, c *RangeController, label string) View {
	t.Helper()
	p, ok := PresetByLabel(label)
	if !ok {
		t.Fatalf("unknown preset %q", label)
	}
	v, _ := c.SelectPreset(p, AvailableRange{})
	c.MarkLoaded()
	return v
}

func TestSelectPreset(t *testing.T) {
	c := newTestController()
	p, _ := PresetByLabel("1d")

	v, seq := c.SelectPreset(p, AvailableRange{})

	if v.EndTime != testNow.UnixMilli() {
		t.Errorf("EndTime = %d, want now (%d)", v.EndTime, testNow.UnixMilli())
	}
	if v.RangeSec != SpanDay {
		t.Errorf("RangeSec = %d, want %d", v.RangeSec, SpanDay)
	}
	if v.BinSec != 300 {
		t.Errorf("BinSec = %d, want 300", v.BinSec)
	}
	if c.ZoomLimit() != SpanDay {
		t.Errorf("ZoomLimit = %d, want %d", c.ZoomLimit(), SpanDay)
	}
	if seq != 1 {
		t.Errorf("sequence = %d, want 1", seq)
	}
	if c.SelectionLabel() != "1d" {
		t.Errorf("SelectionLabel = %q, want 1d", c.SelectionLabel())
	}
}

func TestSelectPreset_AllUsesAvailableRange(t *testing.T) {
	c := newTestController()
	p, _ := PresetByLabel("all")
	avail := AvailableRange{Min: 1_600_000_000_000, Max: 1_690_000_000_000}

	v, _ := c.SelectPreset(p, avail)

	if v.EndTime != avail.Max {
		t.Errorf("EndTime = %d, want availableMax %d", v.EndTime, avail.Max)
	}
	wantSpan := (avail.Max - avail.Min) / 1000
	if v.RangeSec != wantSpan {
		t.Errorf("RangeSec = %d, want %d", v.RangeSec, wantSpan)
	}
	if v.BinSec != 14400 {
		t.Errorf("BinSec = %d, want 14400 for a multi-year span", v.BinSec)
	}
}

func TestSelectPreset_AllWithoutKnownRange(t *testing.T) {
	c := newTestController()
	p, _ := PresetByLabel("all")

	v, _ := c.SelectPreset(p, AvailableRange{})

	if v.EndTime != testNow.UnixMilli() {
		t.Errorf("EndTime = %d, want now", v.EndTime)
	}
	if v.RangeSec != 30*SpanDay {
		t.Errorf("RangeSec = %d, want 30d fallback", v.RangeSec)
	}
}

func TestApplyGesture_IgnoredBeforeFirstLoad(t *testing.T) {
	c := newTestController()
	p, _ := PresetByLabel("1h")
	c.SelectPreset(p, AvailableRange{})

	if _, ok := c.ApplyGesture(0, 1_000_000); ok {
		t.Error("gestures before the first successful load must be ignored")
	}
}

func TestApplyGesture_SnapsToPresetSpan(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "7d")

	// 604850s is within 1% of the 7d preset span; it must snap to exactly
	// 604800s.
	start := int64(1_690_000_000_000)
	end := start + 604_850*1000

	v, ok := c.ApplyGesture(start, end)
	if !ok {
		t.Fatal("expected gesture to produce an update")
	}
	if v.RangeSec != 604_800 {
		t.Errorf("RangeSec = %d, want snapped 604800", v.RangeSec)
	}
	// Snap alone does not count as a clamp; the end anchors on the
	// gesture's trailing edge.
	if v.EndTime != end {
		t.Errorf("EndTime = %d, want gesture end %d", v.EndTime, end)
	}
}

func TestApplyGesture_SnapsToRematchedPreset(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "7d")

	// Zoom fully in: the span clamps to 604800/7 = 86400s and the commit
	// re-matches the 1d preset while the zoom limit stays at 7d.
	start := int64(1_690_000_000_000)
	v, ok := c.ApplyGesture(start, start+1000*1000)
	if !ok {
		t.Fatal("expected gesture to produce an update")
	}
	c.Commit(v)
	if c.SelectionLabel() != "1d" {
		t.Fatalf("SelectionLabel = %q, want rematched 1d", c.SelectionLabel())
	}

	// A follow-up gesture near the re-matched preset's span must snap to
	// that span, not drift into a custom selection.
	end := v.EndTime + 3600*1000
	v2, ok := c.ApplyGesture(end-86_450*1000, end)
	if !ok {
		t.Fatal("expected gesture to produce an update")
	}
	if v2.RangeSec != SpanDay {
		t.Errorf("RangeSec = %d, want snapped %d", v2.RangeSec, SpanDay)
	}

	c.Commit(v2)
	if c.SelectionLabel() != "1d" {
		t.Errorf("SelectionLabel = %q, want 1d after snap", c.SelectionLabel())
	}
}

func TestApplyGesture_ClampBelowMinRange(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "1h")

	// minRangeSec for a 1h limit is max(60, 3600/7) = 514.
	start := int64(1_690_000_000_000)
	end := start + 100*1000

	v, ok := c.ApplyGesture(start, end)
	if !ok {
		t.Fatal("expected gesture to produce an update")
	}
	if v.RangeSec != 514 {
		t.Errorf("RangeSec = %d, want clamped 514", v.RangeSec)
	}
	// Clamping changed the span, so the end recomputes from the gesture
	// start.
	if v.EndTime != start+514*1000 {
		t.Errorf("EndTime = %d, want start-anchored %d", v.EndTime, start+514*1000)
	}
}

func TestApplyGesture_ClampAboveZoomLimit(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "1h")

	start := int64(1_690_000_000_000)
	end := start + 7200*1000

	v, ok := c.ApplyGesture(start, end)
	if !ok {
		t.Fatal("expected gesture to produce an update")
	}
	if v.RangeSec != SpanHour {
		t.Errorf("RangeSec = %d, want clamped to zoom limit %d", v.RangeSec, SpanHour)
	}
	if v.EndTime != start+SpanHour*1000 {
		t.Errorf("EndTime = %d, want start-anchored %d", v.EndTime, start+SpanHour*1000)
	}
}

func TestApplyGesture_NormalizesReversedRange(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "1h")

	start := int64(1_690_000_000_000)
	end := start + 1800*1000

	forward, okF := c.ApplyGesture(start, end)
	reversed, okR := c.ApplyGesture(end, start)

	if !okF || !okR {
		t.Fatal("expected both gestures to produce updates")
	}
	if forward != reversed {
		t.Errorf("reversed gesture = %+v, want %+v", reversed, forward)
	}
}

func TestApplyGesture_SuppressesNoOp(t *testing.T) {
	c := newTestController()
	v := selectAndLoad(t, c, "1h")

	// Within 1s of the current view in both end time and span: no update,
	// no fetch.
	start := v.EndTime - SpanHour*1000 + 200
	end := v.EndTime + 500

	if _, ok := c.ApplyGesture(start, end); ok {
		t.Error("expected sub-second gesture to be suppressed")
	}
}

func TestCommit_RematchesPreset(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "7d")

	v, seq := c.Commit(View{EndTime: 1_690_000_000_000, RangeSec: SpanDay, BinSec: 300})
	if seq != 2 {
		t.Errorf("sequence = %d, want 2", seq)
	}
	if c.SelectionLabel() != "1d" {
		t.Errorf("SelectionLabel = %q, want rematched 1d", c.SelectionLabel())
	}
	if v.RangeSec != SpanDay {
		t.Errorf("RangeSec = %d, want %d", v.RangeSec, SpanDay)
	}
	// The zoom limit stays at the last explicitly chosen preset.
	if c.ZoomLimit() != 7*SpanDay {
		t.Errorf("ZoomLimit = %d, want %d", c.ZoomLimit(), 7*SpanDay)
	}
}

func TestCommit_CustomSelection(t *testing.T) {
	c := newTestController()
	selectAndLoad(t, c, "7d")

	c.Commit(View{EndTime: 1_690_000_000_000, RangeSec: 12_345, BinSec: 60})

	if c.SelectionLabel() != "custom" {
		t.Errorf("SelectionLabel = %q, want custom", c.SelectionLabel())
	}
}

func TestSequenceCounter(t *testing.T) {
	c := newTestController()
	if c.CurrentSequence() != 0 {
		t.Errorf("initial sequence = %d, want 0", c.CurrentSequence())
	}

	p, _ := PresetByLabel("1h")
	_, seq := c.SelectPreset(p, AvailableRange{})
	if seq != 1 || c.CurrentSequence() != 1 {
		t.Errorf("sequence after preset = %d, want 1", c.CurrentSequence())
	}

	c.MarkLoaded()
	_, seq = c.Commit(View{EndTime: 1_690_000_000_000, RangeSec: 600, BinSec: 60})
	if seq != 2 {
		t.Errorf("sequence after commit = %d, want 2", seq)
	}

	// A result carrying an old sequence must not match after cancellation.
	c.CancelPending()
	if c.CurrentSequence() != 3 {
		t.Errorf("sequence after cancel = %d, want 3", c.CurrentSequence())
	}
	if seq == c.CurrentSequence() {
		t.Error("stale sequence must not match the current counter")
	}
}

func TestMinRangeSec(t *testing.T) {
	tests := []struct {
		zoomLimit int64
		want      int64
	}{
		{SpanHour, 514},     // 3600/7
		{60, 60},            // floor, capped at the limit itself
		{300, 60},           // 300/7 < 60, floor wins
		{7 * SpanDay, 86400}, // 604800/7
	}

	for _, tt := range tests {
		c := newTestController()
		c.zoomLimitSec = tt.zoomLimit
		if got := c.minRangeSec(); got != tt.want {
			t.Errorf("minRangeSec with limit %d = %d, want %d", tt.zoomLimit, got, tt.want)
		}
	}
}
