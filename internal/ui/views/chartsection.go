package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/components"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// ChartSection owns the access chart and everything behind it: the range
// controller, the window cache, and the gesture debouncer. Preset keys apply
// immediately; pan and zoom gestures accumulate into a pending view that
// commits once the debounce window elapses, and results arriving under a
// stale sequence number are dropped.
type ChartSection struct {
	cache      *stats.WindowCache
	controller *stats.RangeController
	debouncer  *stats.Debouncer
	chart      *components.AccessChart
	keys       ui.KeyMap

	width  int
	height int

	defaultRange string
	pending      stats.View
	hasPending   bool
}

var _ Section = (*ChartSection)(nil)

// NewChartSection creates the chart section. defaultRange is the preset label
// selected on startup.
func NewChartSection(cache *stats.WindowCache, keys ui.KeyMap, defaultRange string) *ChartSection {
	return &ChartSection{
		cache:        cache,
		controller:   stats.NewRangeController(),
		debouncer:    &stats.Debouncer{},
		chart:        components.NewAccessChart(),
		keys:         keys,
		defaultRange: defaultRange,
	}
}

// Init selects the configured default range and starts its fetch.
func (s *ChartSection) Init() tea.Cmd {
	p, ok := stats.PresetByLabel(s.defaultRange)
	if !ok {
		p, _ = stats.PresetByLabel("1d")
	}
	return s.selectPreset(p)
}

// SetSize sets the section dimensions.
func (s *ChartSection) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.chart.SetSize(width, height-2) // preset row + spacer
}

// Selection returns the active range label for the status bar.
func (s *ChartSection) Selection() string {
	return s.controller.SelectionLabel()
}

// VisibleRange returns the currently displayed time bounds in epoch ms.
func (s *ChartSection) VisibleRange() (int64, int64) {
	v := s.controller.View()
	return v.Start(), v.EndTime
}

// CancelPending invalidates any in-flight fetch and pending gesture. Called
// on teardown.
func (s *ChartSection) CancelPending() {
	s.controller.CancelPending()
	s.debouncer.Reset()
	s.hasPending = false
}

// Update handles key, mouse, debounce, and data messages.
func (s *ChartSection) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return s.zoom(0.5)
		case tea.MouseButtonWheelDown:
			return s.zoom(2)
		}
		return nil

	case ui.ZoomDebounceMsg:
		return s.handleDebounce(msg)

	case ui.AccessDataMsg:
		return s.handleData(msg)
	}
	return nil
}

func (s *ChartSection) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Range1h):
		return s.selectLabel("1h")
	case key.Matches(msg, s.keys.Range1d):
		return s.selectLabel("1d")
	case key.Matches(msg, s.keys.Range7d):
		return s.selectLabel("7d")
	case key.Matches(msg, s.keys.Range30d):
		return s.selectLabel("30d")
	case key.Matches(msg, s.keys.RangeAll):
		return s.selectLabel("all")

	case key.Matches(msg, s.keys.PanLeft):
		return s.pan(-1)
	case key.Matches(msg, s.keys.PanRight):
		return s.pan(1)
	case key.Matches(msg, s.keys.ZoomIn):
		return s.zoom(0.5)
	case key.Matches(msg, s.keys.ZoomOut):
		return s.zoom(2)

	case key.Matches(msg, s.keys.Refresh):
		return s.refresh()
	}
	return nil
}

func (s *ChartSection) selectLabel(label string) tea.Cmd {
	p, ok := stats.PresetByLabel(label)
	if !ok {
		return nil
	}
	return s.selectPreset(p)
}

// selectPreset applies a preset immediately, bypassing the debouncer and
// superseding any pending gesture.
func (s *ChartSection) selectPreset(p stats.Preset) tea.Cmd {
	s.debouncer.Reset()
	s.hasPending = false

	view, seq := s.controller.SelectPreset(p, s.cache.Available())
	s.chart.SetLoading(true)
	logger.Debug("range preset selected", "preset", p.Label, "rangeSec", view.RangeSec)
	return s.fetchCmd(seq, view)
}

// refresh re-anchors the active preset to the current time. A custom span has
// no stable anchor, so it is left alone.
func (s *ChartSection) refresh() tea.Cmd {
	if !s.controller.Loaded() {
		return nil
	}
	p, ok := stats.PresetByLabel(s.controller.SelectionLabel())
	if !ok {
		return nil
	}
	return s.selectPreset(p)
}

// pan synthesizes a gesture shifting the base view by half its span.
func (s *ChartSection) pan(direction int64) tea.Cmd {
	base := s.baseView()
	shift := direction * base.RangeSec * 1000 / 2
	return s.gesture(base.Start()+shift, base.EndTime+shift)
}

// zoom synthesizes a gesture scaling the base span around its end anchor.
// The span is capped at the zoom limit here so that zooming out at the limit
// suppresses as a no-op instead of re-anchoring on the overshot start edge.
func (s *ChartSection) zoom(factor float64) tea.Cmd {
	base := s.baseView()
	span := int64(float64(base.RangeSec)*factor + 0.5)
	if limit := s.controller.ZoomLimit(); limit > 0 && span > limit {
		span = limit
	}
	return s.gesture(base.EndTime-span*1000, base.EndTime)
}

// baseView is what the next gesture composes against: the pending view while
// the debounce window is open, otherwise the committed one. Without this a
// rapid key sequence would re-derive every step from the same stale view.
func (s *ChartSection) baseView() stats.View {
	if s.hasPending {
		return s.pending
	}
	return s.controller.View()
}

func (s *ChartSection) gesture(startMs, endMs int64) tea.Cmd {
	view, ok := s.controller.ApplyGesture(startMs, endMs)
	if !ok {
		return nil
	}
	s.pending = view
	s.hasPending = true

	gen := s.debouncer.Arm()
	return tea.Tick(stats.ZoomDebounce, func(time.Time) tea.Msg {
		return ui.ZoomDebounceMsg{Gen: gen}
	})
}

func (s *ChartSection) handleDebounce(msg ui.ZoomDebounceMsg) tea.Cmd {
	if !s.debouncer.Fire(msg.Gen) || !s.hasPending {
		return nil
	}
	s.hasPending = false

	view, seq := s.controller.Commit(s.pending)
	s.chart.SetLoading(true)
	logger.Debug("range commit",
		"endTime", view.EndTime, "rangeSec", view.RangeSec, "binSec", view.BinSec)
	return s.fetchCmd(seq, view)
}

func (s *ChartSection) handleData(msg ui.AccessDataMsg) tea.Cmd {
	if msg.Seq != s.controller.CurrentSequence() {
		logger.Debug("discarded stale window result",
			"seq", msg.Seq, "current", s.controller.CurrentSequence())
		return nil
	}

	s.chart.SetLoading(false)
	if msg.Err != nil {
		s.chart.SetError(msg.Err.Error())
		logger.Warn("window fetch failed", "error", msg.Err)
		return nil
	}

	s.controller.MarkLoaded()
	s.chart.SetError("")

	series := stats.Merge(s.cache.Windows())
	visible := stats.Visible(series, msg.View.Start(), msg.View.EndTime)
	s.chart.SetData(visible, msg.View.Start(), msg.View.EndTime)

	return s.prefetchCmd(msg.View, msg.Window)
}

// fetchCmd loads one window off the Update loop and reports back with the
// sequence number it was issued under.
func (s *ChartSection) fetchCmd(seq uint64, v stats.View) tea.Cmd {
	return func() tea.Msg {
		w, err := s.cache.Fetch(context.Background(), v.EndTime, v.RangeSec, v.BinSec)
		return ui.AccessDataMsg{Seq: seq, View: v, Window: w, FetchedAt: time.Now(), Err: err}
	}
}

// prefetchCmd warms the neighbouring windows so an immediate pan renders
// from cache. It never produces a message.
func (s *ChartSection) prefetchCmd(v stats.View, last *stats.Window) tea.Cmd {
	return func() tea.Msg {
		s.cache.PrefetchAdjacent(context.Background(), v.EndTime, v.RangeSec, v.BinSec, last)
		return nil
	}
}

// View renders the preset row and the chart.
func (s *ChartSection) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.presetRow(),
		s.chart.View(),
	)
}

func (s *ChartSection) presetRow() string {
	active := s.controller.SelectionLabel()

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render("Access"))
	sb.WriteString("  ")
	for _, p := range stats.Presets {
		if p.Label == active {
			sb.WriteString(styles.ActivePresetStyle.Render(p.Label))
		} else {
			sb.WriteString(styles.PresetStyle.Render(p.Label))
		}
		sb.WriteString(" ")
	}
	if active == "custom" {
		sb.WriteString(styles.ActivePresetStyle.Render("custom"))
	}
	return sb.String()
}
