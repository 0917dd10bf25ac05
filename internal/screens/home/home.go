package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/history"
	"github.com/abhisek/reciteking/internal/screens/mistakes"
	"github.com/abhisek/reciteking/internal/screens/placeholder"
	"github.com/abhisek/reciteking/internal/screens/setup"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

const buttonWidth = 26

type dashboardLoadedMsg struct {
	prefs *ledger.UserPrefs
	stats stats
	err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc        screen.Services
	menu       components.Menu
	updateNote string

	prefs   ledger.UserPrefs
	stats   stats
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ router.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. latestVersion, when non-empty, is shown
// as an update notice.
func New(svc screen.Services, latestVersion string) *HomeScreen {
	h := &HomeScreen{
		svc:        svc,
		updateNote: latestVersion,
		prefs:      ledger.UserPrefs{Gender: ledger.GenderBoy},
	}

	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "单人测评 Start Quiz", Action: push(func() screen.Screen { return setup.New(svc) })},
		{Label: "团队竞赛 Team Mode", Action: push(func() screen.Screen { return placeholder.TeamMode() })},
		{Label: "历史记录 History", Action: push(func() screen.Screen { return history.New(svc.Ledger) })},
		{Label: "错题本 Mistake Book", Action: push(func() screen.Screen { return mistakes.New(svc) })},
		{Label: "退出 Exit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load
}

// Resume reloads the dashboard when the learner returns from a sub-screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return tea.Batch(h.load, screen.RefreshHeader)
}

func (h *HomeScreen) load() tea.Msg {
	if h.svc.Ledger == nil {
		return dashboardLoadedMsg{}
	}
	ctx := context.Background()

	prefs, err := h.svc.Ledger.UserPrefs(ctx)
	if err != nil {
		return dashboardLoadedMsg{err: err}
	}
	records, err := h.svc.Ledger.History(ctx)
	if err != nil {
		return dashboardLoadedMsg{err: err}
	}
	wrong, err := h.svc.Ledger.Mistakes(ctx)
	if err != nil {
		return dashboardLoadedMsg{err: err}
	}

	st := stats{sessions: len(records), mistakes: len(wrong)}
	for i, r := range records {
		if i == 0 {
			st.lastScore = r.Score
		}
		st.bestScore = max(st.bestScore, r.Score)
	}
	return dashboardLoadedMsg{prefs: prefs, stats: st}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(dashboardLoadedMsg); ok {
		if msg.err != nil {
			h.loadErr = msg.err.Error()
			return h, nil
		}
		h.loadErr = ""
		if msg.prefs != nil {
			h.prefs = *msg.prefs
		}
		h.stats = msg.stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 34 || width < 90

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderAvatar(h.prefs.Gender)))
	}

	sections = append(sections, renderGreeting(h.prefs.Name, cw))
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if !h.svc.Explainer.Available() {
		sections = append(sections, renderTutorBanner(cw))
	}
	if h.loadErr != "" {
		sections = append(sections, layout.Centered(theme.Incorrect.Render("读取记录失败: "+h.loadErr), cw))
	}

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View(buttonWidth)))

	if h.updateNote != "" {
		sections = append(sections, renderUpdateNote(h.updateNote, cw))
	}

	return components.ScrollFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
