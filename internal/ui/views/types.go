// Package views contains the dashboard sections composed by the app model.
package views

import tea "github.com/charmbracelet/bubbletea"

// Section is the interface every dashboard section implements.
type Section interface {
	// Init returns the section's initial commands.
	Init() tea.Cmd

	// Update handles messages and updates the section state.
	Update(tea.Msg) tea.Cmd

	// View renders the section to a string.
	View() string

	// SetSize sets the dimensions of the section.
	SetSize(width, height int)
}
