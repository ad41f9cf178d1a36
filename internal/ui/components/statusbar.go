package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// StatusBar renders the bottom status line: API endpoint, active range
// selection, captured warning/error counts, and the clock.
type StatusBar struct {
	width      int
	apiURL     string
	selection  string
	timestamp  time.Time
	dateFormat string
}

// NewStatusBar creates a status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{dateFormat: "2006-01-02 15:04:05"}
}

// SetSize sets the width of the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetAPIURL sets the upstream endpoint shown on the left.
func (s *StatusBar) SetAPIURL(url string) {
	s.apiURL = url
}

// SetSelection sets the active range label.
func (s *StatusBar) SetSelection(label string) {
	s.selection = label
}

// SetTimestamp sets the clock.
func (s *StatusBar) SetTimestamp(t time.Time) {
	s.timestamp = t
}

// SetDateFormat sets the clock format.
func (s *StatusBar) SetDateFormat(format string) {
	s.dateFormat = format
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.apiURL
	if s.selection != "" {
		left += "  range: " + s.selection
	}

	right := s.timestamp.Format(s.dateFormat)
	if warn, errs := logger.Counts(); warn+errs > 0 {
		right = fmt.Sprintf("⚠ %dW/%dE  %s", warn, errs, right)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	bar := fmt.Sprintf(" %s%s%s ", left, strings.Repeat(" ", gap), right)
	return styles.MutedStyle.Render(bar)
}
