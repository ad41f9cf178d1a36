// Package styles provides centralized Lipgloss styling for the dashboard UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Color palette.
var (
	ColorBorder  = lipgloss.Color("240") // Gray - all borders
	ColorAccent  = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted   = lipgloss.Color("8")   // Dark gray - secondary text
	ColorSuccess = lipgloss.Color("10")  // Green - success, light on
	ColorError   = lipgloss.Color("9")   // Red - errors, light off
	ColorWarning = lipgloss.Color("11")  // Yellow

	ColorSelectedFg = lipgloss.Color("229")
	ColorSelectedBg = lipgloss.Color("57")
)

// Common styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActivePresetStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg).
				Padding(0, 1)

	PresetStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)

// seriesColors assigns chart colors to categories by legend position.
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
	asciigraph.Red,
	asciigraph.Cyan,
	asciigraph.Magenta,
}

// SeriesColor returns the chart color for the i-th category.
func SeriesColor(i int) asciigraph.AnsiColor {
	return seriesColors[i%len(seriesColors)]
}

// SeriesColors returns colors for n categories in legend order.
func SeriesColors(n int) []asciigraph.AnsiColor {
	colors := make([]asciigraph.AnsiColor, n)
	for i := range colors {
		colors[i] = SeriesColor(i)
	}
	return colors
}
