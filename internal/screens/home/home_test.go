package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/history"
	"github.com/abhisek/reciteking/internal/screens/mistakes"
	"github.com/abhisek/reciteking/internal/screens/placeholder"
	"github.com/abhisek/reciteking/internal/screens/setup"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/store"
)

func newTestHome(t *testing.T) (*HomeScreen, *ledger.Ledger) {
	t.Helper()
	bank, err := questionbank.LoadEmbedded()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	l := ledger.New(store.NewMemoryStore())
	h := New(screen.Services{
		Bank:      bank,
		Builder:   session.NewBuilder(bank),
		Ledger:    l,
		Explainer: explain.New(nil),
	}, "")
	return h, l
}

var down = tea.KeyPressMsg{Code: tea.KeyDown}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		downs int
		check func(screen.Screen) bool
	}{
		{0, func(s screen.Screen) bool { _, ok := s.(*setup.SetupScreen); return ok }},
		{1, func(s screen.Screen) bool { _, ok := s.(*placeholder.PlaceholderScreen); return ok }},
		{2, func(s screen.Screen) bool { _, ok := s.(*history.HistoryScreen); return ok }},
		{3, func(s screen.Screen) bool { _, ok := s.(*mistakes.MistakeScreen); return ok }},
	}

	for _, tt := range tests {
		h, _ := newTestHome(t)
		for range tt.downs {
			h.Update(down)
		}
		_, cmd := h.Update(enter)
		if cmd == nil {
			t.Fatalf("item %d: expected a command", tt.downs)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("item %d: expected PushScreenMsg", tt.downs)
		}
		if !tt.check(push.Screen) {
			t.Errorf("item %d: unexpected screen %T", tt.downs, push.Screen)
		}
	}
}

func TestDashboardStats(t *testing.T) {
	h, l := newTestHome(t)
	ctx := context.Background()

	if err := l.SaveUserPrefs(ctx, "小红", ledger.GenderGirl); err != nil {
		t.Fatal(err)
	}
	for _, correct := range []int{3, 5, 4} {
		res := &session.Result{Mode: session.ModePractice, Book: questionbank.BookChineseHistory, Total: 5, CorrectCount: correct, TimeLimit: 20}
		if _, err := l.RecordHistory(ctx, res); err != nil {
			t.Fatal(err)
		}
	}

	h.Update(h.Init()())

	if h.stats.sessions != 3 || h.stats.bestScore != 100 || h.stats.lastScore != 80 {
		t.Errorf("stats = %+v", h.stats)
	}
	if h.prefs.Name != "小红" || h.prefs.Gender != ledger.GenderGirl {
		t.Errorf("prefs = %+v", h.prefs)
	}

	view := h.View(120, 40)
	if !strings.Contains(view, "小红") {
		t.Error("greeting should include the learner's name")
	}
	if !strings.Contains(view, "AI 导师未配置") {
		t.Error("tutor banner should show when no provider is configured")
	}
}
