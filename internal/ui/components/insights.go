package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// InsightCards renders global and per-area outage/load statistics.
type InsightCards struct {
	width    int
	insights *api.Insights
	errText  string
}

// NewInsightCards creates the insight card panel.
func NewInsightCards() *InsightCards {
	return &InsightCards{width: 80}
}

// SetSize sets the available width.
func (c *InsightCards) SetSize(width int) {
	if width >= 40 {
		c.width = width
	}
}

// SetInsights replaces the displayed statistics.
func (c *InsightCards) SetInsights(insights *api.Insights) {
	c.insights = insights
	c.errText = ""
}

// SetError attaches an error line; last-good data stays visible.
func (c *InsightCards) SetError(text string) {
	c.errText = text
}

// View renders the panel.
func (c *InsightCards) View() string {
	if c.insights == nil {
		if c.errText != "" {
			return styles.ErrorStyle.Render("✗ " + c.errText)
		}
		return styles.InfoStyle.Render("Loading insights…")
	}

	cards := []string{c.areaCard("Overall", c.insights.Global)}
	for _, area := range c.insights.Areas {
		cards = append(cards, c.areaCard(area.Area, area))
	}

	panel := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if c.errText != "" {
		return lipgloss.JoinVertical(lipgloss.Left, panel,
			styles.ErrorStyle.Render("✗ "+c.errText))
	}
	return panel
}

func (c *InsightCards) areaCard(title string, in api.AreaInsight) string {
	lines := []string{
		styles.TitleStyle.Render(title),
		fmt.Sprintf("%s %.2f%%", styles.MutedStyle.Render("uptime"), in.UptimePct.Float64()),
		fmt.Sprintf("%s %s", styles.MutedStyle.Render("outages"), humanize.Comma(int64(in.OutageCount))),
		fmt.Sprintf("%s %s", styles.MutedStyle.Render("longest"), formatSeconds(int64(in.LongestOutageSec))),
		fmt.Sprintf("%s %s", styles.MutedStyle.Render("total off"), formatSeconds(int64(in.TotalOutageSec))),
	}
	if in.MaxDay.Int64() != 0 {
		lines = append(lines, fmt.Sprintf("%s %s (%s)",
			styles.MutedStyle.Render("peak day"),
			in.MaxDay.Time().Format("Jan 02"),
			humanize.Comma(int64(in.MaxDayHits))))
	}
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatSeconds renders a duration as a compact "2d 3h" / "4h 05m" string.
func formatSeconds(sec int64) string {
	d := time.Duration(sec) * time.Second
	switch {
	case d >= 24*time.Hour:
		days := d / (24 * time.Hour)
		hours := (d % (24 * time.Hour)) / time.Hour
		return fmt.Sprintf("%dd %dh", days, hours)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %02dm", d/time.Hour, (d%time.Hour)/time.Minute)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
}
