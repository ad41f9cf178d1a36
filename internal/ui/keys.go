// Package ui provides Bubbletea messages and key bindings shared by the
// dashboard views.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the application.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// Range presets
	Range1h  key.Binding
	Range1d  key.Binding
	Range7d  key.Binding
	Range30d key.Binding
	RangeAll key.Binding

	// Chart navigation
	PanLeft  key.Binding
	PanRight key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
}

// DefaultKeyMap returns the default keyboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Range1h: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "1 hour"),
		),
		Range1d: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "1 day"),
		),
		Range7d: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "7 days"),
		),
		Range30d: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "30 days"),
		),
		RangeAll: key.NewBinding(
			key.WithKeys("5", "a"),
			key.WithHelp("5/a", "all time"),
		),

		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan back"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan forward"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
	}
}
