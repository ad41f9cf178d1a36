package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/components"
)

// Heights of the fixed dashboard sections; the chart takes the remainder.
const (
	summaryHeight  = 7
	insightsHeight = 8
	outagesHeight  = 5
)

// Dashboard composes the summary cards, access chart, insight cards, and
// light status strips into the single main view.
type Dashboard struct {
	summary  *components.SummaryCards
	chart    *ChartSection
	insights *components.InsightCards
	outages  *components.OutageBar

	width  int
	height int
}

var _ Section = (*Dashboard)(nil)

// NewDashboard creates the dashboard around a shared window cache.
func NewDashboard(cache *stats.WindowCache, keys ui.KeyMap, defaultRange string) *Dashboard {
	return &Dashboard{
		summary:  components.NewSummaryCards(),
		chart:    NewChartSection(cache, keys, defaultRange),
		insights: components.NewInsightCards(),
		outages:  components.NewOutageBar(),
	}
}

// Init starts the initial chart fetch.
func (d *Dashboard) Init() tea.Cmd {
	return d.chart.Init()
}

// SetSize distributes the available space across the sections.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height

	d.summary.SetSize(width)
	d.insights.SetSize(width)
	d.outages.SetSize(width)

	chartHeight := height - summaryHeight - insightsHeight - outagesHeight
	if chartHeight < 8 {
		chartHeight = 8
	}
	d.chart.SetSize(width, chartHeight)
}

// Selection returns the chart's active range label.
func (d *Dashboard) Selection() string {
	return d.chart.Selection()
}

// VisibleRange returns the chart's displayed time bounds in epoch ms.
func (d *Dashboard) VisibleRange() (int64, int64) {
	return d.chart.VisibleRange()
}

// CancelPending invalidates in-flight chart fetches on teardown.
func (d *Dashboard) CancelPending() {
	d.chart.CancelPending()
}

// Update routes messages to the owning section.
func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ui.SummaryDataMsg:
		if msg.Err != nil {
			d.summary.SetError(msg.Err.Error())
		} else {
			d.summary.SetSummary(msg.Summary)
		}
		return nil

	case ui.InsightsDataMsg:
		if msg.Err != nil {
			d.insights.SetError(msg.Err.Error())
		} else {
			d.insights.SetInsights(msg.Insights)
		}
		return nil

	case ui.LightStatusDataMsg:
		if msg.Err == nil {
			start, end := d.chart.VisibleRange()
			d.outages.SetStatus(msg.Status)
			d.outages.SetRange(start, end)
		}
		return nil

	case ui.AccessDataMsg:
		cmd := d.chart.Update(msg)
		start, end := d.chart.VisibleRange()
		d.outages.SetRange(start, end)
		return cmd
	}

	return d.chart.Update(msg)
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		d.summary.View(),
		d.chart.View(),
		d.insights.View(),
		d.outages.View(),
	)
}
