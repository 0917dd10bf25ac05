package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/home"
	"github.com/abhisek/reciteking/internal/screens/quiz"
	"github.com/abhisek/reciteking/internal/screens/welcome"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Services screen.Services

	// LatestVersion is shown on the home screen when an update is available.
	LatestVersion string

	// SkipWelcome starts directly on the home screen.
	SkipWelcome bool

	// Quiz, when set, opens a practice quiz on top of the home screen.
	Quiz *QuizStart
}

// QuizStart is a practice quiz to open at launch.
type QuizStart struct {
	Questions []questionbank.Question
	TimeLimit int
}

type headerLoadedMsg struct {
	info layout.HeaderInfo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	svc    screen.Services
	header layout.HeaderInfo
	width  int
	height int
}

// NewAppModel creates the root model, starting on the welcome screen.
func NewAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Services, opts.LatestVersion)
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}

	m := AppModel{
		router: router.New(first),
		svc:    opts.Services,
	}
	m.start = first.Init()
	if opts.Quiz != nil {
		q := quiz.New(opts.Services, opts.Quiz.Questions, opts.Quiz.TimeLimit, session.ModePractice)
		m.start = tea.Batch(m.start, m.router.Push(q))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.start, m.loadHeader)
}

func (m AppModel) loadHeader() tea.Msg {
	l := m.svc.Ledger
	if l == nil {
		return headerLoadedMsg{}
	}
	ctx := context.Background()

	var info layout.HeaderInfo
	if prefs, err := l.UserPrefs(ctx); err == nil && prefs != nil {
		info.UserName = prefs.Name
	}
	if qs, err := l.Mistakes(ctx); err == nil {
		info.Mistakes = len(qs)
	}
	return headerLoadedMsg{info: info}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerLoadedMsg:
		m.header = msg.info
		return m, nil

	case screen.RefreshHeaderMsg:
		return m, m.loadHeader

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash screen owns the whole terminal.
	if _, ok := active.(*welcome.WelcomeScreen); ok {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(title, m.header, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
