package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// OutageBar renders each area's light status over the visible range as a
// one-line strip: filled blocks while the light was on, shaded blocks while
// it was off, blanks before the first known event.
type OutageBar struct {
	width   int
	status  *api.LightStatus
	startMs int64
	endMs   int64
}

// NewOutageBar creates the outage strip panel.
func NewOutageBar() *OutageBar {
	return &OutageBar{width: 80}
}

// SetSize sets the available width.
func (b *OutageBar) SetSize(width int) {
	if width >= 40 {
		b.width = width
	}
}

// SetStatus replaces the on/off event data.
func (b *OutageBar) SetStatus(status *api.LightStatus) {
	b.status = status
}

// SetRange sets the visible time bounds the strip covers.
func (b *OutageBar) SetRange(startMs, endMs int64) {
	b.startMs = startMs
	b.endMs = endMs
}

// View renders one strip per area.
func (b *OutageBar) View() string {
	if b.status == nil || len(b.status.Areas) == 0 || b.endMs <= b.startMs {
		return ""
	}

	labelWidth := 0
	for _, area := range b.status.Areas {
		if len(area.Area) > labelWidth {
			labelWidth = len(area.Area)
		}
	}
	barWidth := b.width - labelWidth - 3
	if barWidth < 10 {
		barWidth = 10
	}

	onStyle := lipgloss.NewStyle().Foreground(styles.ColorSuccess)
	offStyle := lipgloss.NewStyle().Foreground(styles.ColorError)

	lines := make([]string, 0, len(b.status.Areas)+1)
	lines = append(lines, styles.TitleStyle.Render("Light status"))
	for _, area := range b.status.Areas {
		cells := b.renderCells(area.Events, barWidth)

		var sb strings.Builder
		sb.WriteString(styles.MutedStyle.Render(padRight(area.Area, labelWidth)))
		sb.WriteString("  ")
		for _, cell := range cells {
			switch cell {
			case lightOn:
				sb.WriteString(onStyle.Render("█"))
			case lightOff:
				sb.WriteString(offStyle.Render("░"))
			default:
				sb.WriteString(" ")
			}
		}
		lines = append(lines, sb.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type lightState int

const (
	lightUnknown lightState = iota
	lightOn
	lightOff
)

// renderCells resolves the light state at each cell's start time by walking
// the ordered event list once.
func (b *OutageBar) renderCells(events []api.LightEvent, barWidth int) []lightState {
	cells := make([]lightState, barWidth)
	cellMs := float64(b.endMs-b.startMs) / float64(barWidth)

	state := lightUnknown
	next := 0
	for i := range cells {
		cellStart := b.startMs + int64(float64(i)*cellMs)
		for next < len(events) && events[next].Timestamp.Int64() <= cellStart {
			if events[next].On {
				state = lightOn
			} else {
				state = lightOff
			}
			next++
		}
		cells[i] = state
	}
	return cells
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
