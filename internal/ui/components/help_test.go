package components

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
)

func TestHelp_ListsBindings(t *testing.T) {
	help := NewHelp([]key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	})

	view := help.View()
	for _, want := range []string{"Keyboard shortcuts", "quit", "refresh"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}
}

func TestHelp_ShowsRecentWarnings(t *testing.T) {
	logger.Init(false, filepath.Join(t.TempDir(), "test.log"))
	defer logger.Close()

	logger.Warn("upstream request failed")

	view := NewHelp(nil).View()
	if !strings.Contains(view, "Recent warnings") {
		t.Error("help view missing the recent warnings section")
	}
	if !strings.Contains(view, "upstream request failed") {
		t.Error("help view missing the captured warning")
	}
}
