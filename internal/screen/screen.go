package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that consume Esc themselves
// (for a confirmation prompt, say) instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// RefreshHeaderMsg asks the app to reload the header status (profile name,
// mistake count) after a screen changed them.
type RefreshHeaderMsg struct{}

// RefreshHeader is a tea.Cmd that emits RefreshHeaderMsg.
func RefreshHeader() tea.Msg { return RefreshHeaderMsg{} }
