package components

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// SummaryCards renders the aggregate counters as a row of bordered cards.
type SummaryCards struct {
	width   int
	summary *api.Summary
	errText string
}

// NewSummaryCards creates the summary card row.
func NewSummaryCards() *SummaryCards {
	return &SummaryCards{width: 80}
}

// SetSize sets the available width.
func (s *SummaryCards) SetSize(width int) {
	if width >= 40 {
		s.width = width
	}
}

// SetSummary replaces the displayed counters.
func (s *SummaryCards) SetSummary(summary *api.Summary) {
	s.summary = summary
	s.errText = ""
}

// SetError attaches an error line; last-good counters stay visible.
func (s *SummaryCards) SetError(text string) {
	s.errText = text
}

// View renders the card row.
func (s *SummaryCards) View() string {
	if s.summary == nil {
		if s.errText != "" {
			return styles.ErrorStyle.Render("✗ " + s.errText)
		}
		return styles.InfoStyle.Render("Loading summary…")
	}

	cards := []string{
		s.card("Total hits", humanize.Comma(int64(s.summary.TotalHits))),
		s.card("Unique users", humanize.Comma(int64(s.summary.UniqueUsers))),
		s.card("Unique groups", humanize.Comma(int64(s.summary.UniqueGroups))),
		s.card("By type", s.byTypeLines()),
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	footer := styles.MutedStyle.Render(
		fmt.Sprintf("updated %s", humanize.Time(s.summary.GeneratedAt.Time())))
	if s.errText != "" {
		footer = styles.ErrorStyle.Render("✗ " + s.errText)
	}

	return lipgloss.JoinVertical(lipgloss.Left, row, footer)
}

func (s *SummaryCards) card(title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(title),
		body,
	)
	return styles.CardStyle.Render(content)
}

func (s *SummaryCards) byTypeLines() string {
	types := make([]string, 0, len(s.summary.TotalByType))
	for t := range s.summary.TotalByType {
		types = append(types, t)
	}
	sort.Strings(types)

	lines := make([]string, 0, len(types))
	for _, t := range types {
		lines = append(lines, fmt.Sprintf("%s %s",
			styles.MutedStyle.Render(t),
			humanize.Comma(int64(s.summary.TotalByType[t]))))
	}
	if len(lines) == 0 {
		return styles.MutedStyle.Render("—")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
