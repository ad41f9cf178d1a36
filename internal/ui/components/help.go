package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
	"github.com/Coder-ak/svitlo-e-stats/internal/ui/styles"
)

// maxRecentEntries bounds the warning/error detail shown in the overlay.
const maxRecentEntries = 5

// HelpText renders the key binding overlay.
type HelpText struct {
	width    int
	height   int
	bindings []key.Binding
}

// NewHelp creates the help overlay for the given bindings.
func NewHelp(bindings []key.Binding) *HelpText {
	return &HelpText{bindings: bindings}
}

// SetSize sets the overlay dimensions.
func (h *HelpText) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay.
func (h *HelpText) View() string {
	lines := []string{styles.TitleStyle.Render("Keyboard shortcuts"), ""}
	for _, b := range h.bindings {
		help := b.Help()
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Top,
				styles.TitleStyle.Width(12).Render(help.Key),
				help.Desc))
	}

	if entries := logger.Entries(); len(entries) > 0 {
		lines = append(lines, "", styles.TitleStyle.Render("Recent warnings"))
		if len(entries) > maxRecentEntries {
			entries = entries[len(entries)-maxRecentEntries:]
		}
		for _, e := range entries {
			lines = append(lines, styles.MutedStyle.Render(e.Format()))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.CardStyle.Render(content)
}
