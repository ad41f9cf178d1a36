package app

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui"
)

// fetchSummaryWithRetry loads the aggregate counters on startup, retrying
// transient failures with exponential backoff before giving up. Periodic
// refreshes use fetchSummary instead; they have the next tick to recover.
func fetchSummaryWithRetry(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var summary *api.Summary
		operation := func() error {
			var err error
			summary, err = client.Summary(ctx, false)
			return err
		}

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = 500 * time.Millisecond
		policy.MaxElapsedTime = 15 * time.Second

		err := backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
			logger.Warn("summary fetch failed, retrying", "error", err, "next", next)
		})
		return ui.SummaryDataMsg{Summary: summary, FetchedAt: time.Now(), Err: err}
	}
}

// fetchSummary loads the aggregate counters once. refresh asks the server to
// recompute instead of serving its cached snapshot.
func fetchSummary(client *api.Client, refresh bool) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.Summary(context.Background(), refresh)
		return ui.SummaryDataMsg{Summary: summary, FetchedAt: time.Now(), Err: err}
	}
}

// fetchInsights loads the outage/load statistics.
func fetchInsights(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		insights, err := client.Insights(context.Background())
		return ui.InsightsDataMsg{Insights: insights, FetchedAt: time.Now(), Err: err}
	}
}

// fetchLightStatus loads per-area on/off events for the given bounds.
func fetchLightStatus(client *api.Client, startMs, endMs int64) tea.Cmd {
	return func() tea.Msg {
		status, err := client.LightStatus(context.Background(), startMs, endMs)
		return ui.LightStatusDataMsg{Status: status, FetchedAt: time.Now(), Err: err}
	}
}

// tickSummary schedules the next periodic summary refresh.
func tickSummary(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return ui.SummaryTickMsg{Time: t}
	})
}

// tickStatusBar schedules the next status bar clock update.
func tickStatusBar() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ui.StatusTickMsg{Time: t}
	})
}
