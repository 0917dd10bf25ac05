package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

// PlaceholderScreen is a generic "coming soon" screen.
type PlaceholderScreen struct {
	title string
	note  string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and note.
func New(title, note string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, note: note}
}

// TeamMode returns the placeholder shown for the team competition entry.
func TeamMode() *PlaceholderScreen {
	return New("团队模式 (Team Mode)", "Feature coming soon in this version!")
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *PlaceholderScreen) View(width, height int) string {
	title := theme.Title.Render(p.title)
	note := lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.note)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(title + "\n\n╌╌ Coming Soon ╌╌\n\n" + note)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
