// Package app wires the configuration, API client, and dashboard into the
// top-level Bubbletea model.
package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/config"
	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/components"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/views"
)

// Model is the main Bubbletea application model.
type Model struct {
	config *config.Config
	client *api.Client
	cache  *stats.WindowCache

	width  int
	height int

	keys      ui.KeyMap
	help      *components.HelpText
	statusBar *components.StatusBar
	dashboard *views.Dashboard

	helpVisible bool
	quitting    bool
	ready       bool
}

// New creates the application model from loaded configuration.
func New(cfg *config.Config) *Model {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	cache := stats.NewWindowCache(&stats.APISource{Client: client})

	keys := ui.DefaultKeyMap()

	statusBar := components.NewStatusBar()
	statusBar.SetAPIURL(cfg.API.BaseURL)
	statusBar.SetDateFormat(cfg.UI.DateFormat)

	return &Model{
		config:    cfg,
		client:    client,
		cache:     cache,
		keys:      keys,
		help:      components.NewHelp(helpBindings(keys)),
		statusBar: statusBar,
		dashboard: views.NewDashboard(cache, keys, cfg.UI.DefaultRange),
	}
}

// Init starts the initial fetches and the periodic timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboard.Init(),
		fetchSummaryWithRetry(m.client),
		fetchInsights(m.client),
		tickStatusBar(),
		tickSummary(m.config.UI.RefreshInterval),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.statusBar.SetSize(msg.Width)
		m.dashboard.SetSize(msg.Width, msg.Height-2) // status bar + spacer
		m.ready = true
		return m, nil

	case ui.StatusTickMsg:
		m.statusBar.SetTimestamp(msg.Time)
		m.statusBar.SetSelection(m.dashboard.Selection())
		return m, tickStatusBar()

	case ui.SummaryTickMsg:
		return m, tea.Batch(
			fetchSummary(m.client, false),
			fetchInsights(m.client),
			tickSummary(m.config.UI.RefreshInterval),
		)

	case ui.AccessDataMsg:
		// Route to the chart first so the visible range is current, then
		// load the light status strips for the same bounds.
		cmd := m.dashboard.Update(msg)
		if msg.Err == nil {
			start, end := m.dashboard.VisibleRange()
			return m, tea.Batch(cmd, fetchLightStatus(m.client, start, end))
		}
		return m, cmd

	default:
		return m, m.dashboard.Update(msg)
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.dashboard.CancelPending()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		// Refresh both the chart (handled in the dashboard) and the
		// aggregate panels.
		return m, tea.Batch(
			m.dashboard.Update(msg),
			fetchSummary(m.client, true),
			fetchInsights(m.client),
		)
	}

	if m.helpVisible {
		// Any other key dismisses the overlay.
		m.helpVisible = false
		return m, nil
	}

	if key.Matches(msg, m.keys.RangeAll) {
		// The all-data view spans the full history, so refresh the insight
		// cards alongside the window fetch.
		return m, tea.Batch(
			m.dashboard.Update(msg),
			fetchInsights(m.client),
		)
	}

	return m, m.dashboard.Update(msg)
}

// View renders the application.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading…"
	}

	if m.helpVisible {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}

	content := m.dashboard.View()
	if pad := m.height - lipgloss.Height(content) - 1; pad > 0 {
		content += strings.Repeat("\n", pad)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.statusBar.View())
}

// helpBindings lists the bindings shown in the help overlay, in display order.
func helpBindings(keys ui.KeyMap) []key.Binding {
	return []key.Binding{
		keys.Range1h, keys.Range1d, keys.Range7d, keys.Range30d, keys.RangeAll,
		keys.PanLeft, keys.PanRight, keys.ZoomIn, keys.ZoomOut,
		keys.Refresh, keys.Help, keys.Quit,
	}
}
