package views

import (
	"context"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui"
)

type fakeSource struct {
	calls atomic.Int64
}

func (f *fakeSource) FetchWindow(ctx context.Context, key stats.WindowKey) (*stats.Window, error) {
	f.calls.Add(1)
	bins := make([]int64, 0, 4)
	for ts := key.StartTime(); ts < key.EndTime; ts += key.BinSec * 1000 {
		bins = append(bins, ts)
	}
	counts := make([]float64, len(bins))
	for i := range counts {
		counts[i] = 1
	}
	return &stats.Window{
		Key:    key,
		Bins:   bins,
		Counts: map[string][]float64{"private": counts},
	}, nil
}

func newTestSection() (*ChartSection, *fakeSource) {
	source := &fakeSource{}
	cache := stats.NewWindowCache(source)
	return NewChartSection(cache, ui.DefaultKeyMap(), "1d"), source
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// deliver runs a fetch command and routes its result message back through
// Update, returning the data message it produced.
func deliver(t *testing.T, s *ChartSection, cmd tea.Cmd) ui.AccessDataMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a fetch command, got nil")
	}
	msg, ok := cmd().(ui.AccessDataMsg)
	if !ok {
		t.Fatal("command did not produce an access data message")
	}
	s.Update(msg)
	return msg
}

func TestChartSection_PresetSelectionFetches(t *testing.T) {
	s, source := newTestSection()

	msg := deliver(t, s, s.Update(keyPress('2')))
	if msg.Err != nil {
		t.Fatalf("unexpected fetch error: %v", msg.Err)
	}
	if got := s.Selection(); got != "1d" {
		t.Errorf("Selection() = %q, want %q", got, "1d")
	}
	if msg.View.RangeSec != stats.SpanDay {
		t.Errorf("view range = %d, want %d", msg.View.RangeSec, stats.SpanDay)
	}
	// The delivered window plus two prefetched neighbours.
	if source.calls.Load() < 1 {
		t.Error("expected at least one upstream fetch")
	}
}

func TestChartSection_StaleResultDiscarded(t *testing.T) {
	s, _ := newTestSection()

	cmd1 := s.Update(keyPress('2'))
	cmd2 := s.Update(keyPress('3'))

	// The first selection's result arrives after the second superseded it.
	stale := cmd1().(ui.AccessDataMsg)
	s.Update(stale)
	if s.chart.HasData() {
		t.Error("stale result must not populate the chart")
	}

	deliver(t, s, cmd2)
	if !s.chart.HasData() {
		t.Error("current result must populate the chart")
	}
	if got := s.Selection(); got != "7d" {
		t.Errorf("Selection() = %q, want %q", got, "7d")
	}
}

func TestChartSection_PanCommitsAfterDebounce(t *testing.T) {
	s, _ := newTestSection()
	deliver(t, s, s.Update(keyPress('2')))
	before := s.controller.View()

	// Two rapid pans compose into one pending view shifted a full span back.
	tick1 := s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if tick1 == nil {
		t.Fatal("pan did not arm the debouncer")
	}
	tick2 := s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if tick2 == nil {
		t.Fatal("second pan did not re-arm the debouncer")
	}

	// The first pan's timer fires stale and must not commit.
	if cmd := s.Update(tick1()); cmd != nil {
		t.Error("superseded debounce generation must not commit")
	}

	cmd := s.Update(tick2())
	msg := deliver(t, s, cmd)
	if msg.Err != nil {
		t.Fatalf("unexpected fetch error: %v", msg.Err)
	}

	after := s.controller.View()
	wantEnd := before.EndTime - before.RangeSec*1000
	if after.EndTime != wantEnd {
		t.Errorf("end after two half-span pans = %d, want %d", after.EndTime, wantEnd)
	}
	if after.RangeSec != before.RangeSec {
		t.Errorf("pan changed the span: %d -> %d", before.RangeSec, after.RangeSec)
	}
}

func TestChartSection_ZoomInHalvesSpan(t *testing.T) {
	s, _ := newTestSection()
	deliver(t, s, s.Update(keyPress('2')))

	tick := s.Update(keyPress('+'))
	if tick == nil {
		t.Fatal("zoom did not arm the debouncer")
	}
	deliver(t, s, s.Update(tick()))

	view := s.controller.View()
	if view.RangeSec != stats.SpanDay/2 {
		t.Errorf("zoomed span = %d, want %d", view.RangeSec, stats.SpanDay/2)
	}
	if view.BinSec != stats.BinIntervalFor(view.RangeSec) {
		t.Errorf("bin interval = %d, want %d", view.BinSec, stats.BinIntervalFor(view.RangeSec))
	}
	if got := s.Selection(); got != "custom" {
		t.Errorf("Selection() = %q, want %q", got, "custom")
	}
}

func TestChartSection_ZoomOutAtLimitIsNoOp(t *testing.T) {
	s, _ := newTestSection()
	deliver(t, s, s.Update(keyPress('2')))

	if cmd := s.Update(keyPress('-')); cmd != nil {
		t.Error("zooming out at the zoom limit must not arm a commit")
	}
}

func TestChartSection_GesturesIgnoredBeforeFirstLoad(t *testing.T) {
	s, _ := newTestSection()

	if cmd := s.Update(tea.KeyMsg{Type: tea.KeyLeft}); cmd != nil {
		t.Error("pan before the first load must be ignored")
	}
	if cmd := s.Update(keyPress('+')); cmd != nil {
		t.Error("zoom before the first load must be ignored")
	}
}

func TestChartSection_FetchErrorKeepsLastGoodData(t *testing.T) {
	s, _ := newTestSection()
	deliver(t, s, s.Update(keyPress('2')))
	if !s.chart.HasData() {
		t.Fatal("expected chart data after first load")
	}

	seq := s.controller.CurrentSequence()
	s.Update(ui.AccessDataMsg{Seq: seq, Err: context.DeadlineExceeded})
	if !s.chart.HasData() {
		t.Error("a failed refresh must not clear the last-good chart")
	}
}
