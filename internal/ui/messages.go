package ui

import (
	"time"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/stats"
)

// Data messages (from fetch commands to views)

// AccessDataMsg carries one fetched window. Seq is the request sequence the
// fetch was issued under; a mismatch against the controller's current
// sequence means the result is stale and must be discarded.
type AccessDataMsg struct {
	Seq       uint64
	View      stats.View
	Window    *stats.Window
	FetchedAt time.Time
	Err       error
}

// SummaryDataMsg carries the aggregate counters.
type SummaryDataMsg struct {
	Summary   *api.Summary
	FetchedAt time.Time
	Err       error
}

// InsightsDataMsg carries outage/load statistics for the insight cards.
type InsightsDataMsg struct {
	Insights  *api.Insights
	FetchedAt time.Time
	Err       error
}

// LightStatusDataMsg carries per-area on/off events for the outage bar.
type LightStatusDataMsg struct {
	Status    *api.LightStatus
	FetchedAt time.Time
	Err       error
}

// Timer messages

// SummaryTickMsg triggers a periodic summary refresh.
type SummaryTickMsg struct{ Time time.Time }

// StatusTickMsg updates the status bar clock.
type StatusTickMsg struct{ Time time.Time }

// ZoomDebounceMsg fires when a pan/zoom gesture's debounce window elapses.
// Gen identifies the pending commit; a stale Gen means a newer gesture
// superseded it.
type ZoomDebounceMsg struct{ Gen int }
