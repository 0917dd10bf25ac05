package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/home"
	"github.com/abhisek/reciteking/internal/screens/quiz"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/store"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	bank, err := questionbank.LoadEmbedded()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return Options{
		Services: screen.Services{
			Bank:      bank,
			Builder:   session.NewBuilder(bank),
			Ledger:    ledger.New(store.NewMemoryStore()),
			Explainer: explain.New(nil),
		},
		SkipWelcome: true,
	}
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func TestStartsOnHome(t *testing.T) {
	m := NewAppModel(testOptions(t))
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want home", m.router.Active())
	}
}

func TestQuizStartOpensQuizOverHome(t *testing.T) {
	opts := testOptions(t)
	qs := opts.Services.Bank.FindByBookAndChapters(questionbank.BookWorldHistory, []string{"x1"})
	opts.Quiz = &QuizStart{Questions: qs, TimeLimit: 10}

	m := NewAppModel(opts)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Fatalf("active = %T, want quiz", m.router.Active())
	}
}

func TestEscapeIsHeldByRunningQuiz(t *testing.T) {
	opts := testOptions(t)
	qs := opts.Services.Bank.FindByBookAndChapters(questionbank.BookWorldHistory, []string{"x1"})
	opts.Quiz = &QuizStart{Questions: qs, TimeLimit: 10}
	m := NewAppModel(opts)

	updated, cmd := m.Update(esc)
	m = updated.(AppModel)
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("Esc should not pop a running quiz")
		}
	}
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
}

func TestEscapePopsOrdinaryScreens(t *testing.T) {
	m := NewAppModel(testOptions(t))
	m.router.Push(&stubScreen{})

	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("Esc should pop the top screen")
	}
}

func TestRefreshHeader(t *testing.T) {
	opts := testOptions(t)
	ctx := context.Background()
	l := opts.Services.Ledger
	if err := l.SaveUserPrefs(ctx, "小明", ledger.GenderBoy); err != nil {
		t.Fatal(err)
	}
	qs := opts.Services.Bank.FindByBookAndChapters(questionbank.BookWorldHistory, []string{"x1"})
	if err := l.RecordMistakes(ctx, qs); err != nil {
		t.Fatal(err)
	}

	m := NewAppModel(opts)
	updated, cmd := m.Update(screen.RefreshHeaderMsg{})
	updated, _ = updated.Update(cmd())
	m = updated.(AppModel)

	if m.header.UserName != "小明" || m.header.Mistakes != len(qs) {
		t.Fatalf("header = %+v", m.header)
	}
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "Stub" }
