package mistakes

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/quiz"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/store"
)

func question(id string) questionbank.Question {
	return questionbank.Question{
		ID:      id,
		Prompt:  "prompt " + id,
		Options: [4]string{"a", "b", "c", "d"},
		Answer:  questionbank.LabelC,
		Book:    questionbank.BookWorldHistory,
		Chapter: "x1",
	}
}

func newTestScreen(t *testing.T, ids ...string) *MistakeScreen {
	t.Helper()
	return newTestScreenOn(t, store.NewMemoryStore(), ids...)
}

func newTestScreenOn(t *testing.T, mem *store.MemoryStore, ids ...string) *MistakeScreen {
	t.Helper()
	l := ledger.New(mem)
	var qs []questionbank.Question
	for _, id := range ids {
		qs = append(qs, question(id))
	}
	if err := l.RecordMistakes(context.Background(), qs); err != nil {
		t.Fatalf("seed mistakes: %v", err)
	}

	s := New(screen.Services{
		Builder:   session.NewBuilder(nil),
		Ledger:    l,
		Explainer: explain.New(nil),
	})
	s.Update(s.Init()())
	return s
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain runs cmd and feeds the resulting messages back into the screen,
// returning the ones the screen did not produce itself.
func drain(s *MistakeScreen, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(s, c)...)
		}
		return out
	}
	switch msg.(type) {
	case mistakesLoadedMsg, removedMsg, explanationMsg:
		_, next := s.Update(msg)
		return drain(s, next)
	}
	return []tea.Msg{msg}
}

func TestLoadsMistakes(t *testing.T) {
	s := newTestScreen(t, "WorldHistory-x1-0", "WorldHistory-x1-1")
	if !s.loaded || len(s.questions) != 2 {
		t.Fatalf("loaded=%v questions=%d", s.loaded, len(s.questions))
	}
}

func TestEmptyBook(t *testing.T) {
	s := newTestScreen(t)
	view := s.View(80, 24)
	if want := "太棒了！目前没有错题。"; !strings.Contains(view, want) {
		t.Errorf("view should contain %q", want)
	}
	if _, cmd := s.Update(key('p')); cmd != nil {
		t.Error("practise should do nothing with an empty book")
	}
}

func TestRemoveMastered(t *testing.T) {
	s := newTestScreen(t, "WorldHistory-x1-0", "WorldHistory-x1-1")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := s.Update(key('d'))
	msgs := drain(s, cmd)

	if len(s.questions) != 1 || s.questions[0].ID != "WorldHistory-x1-0" {
		t.Fatalf("questions after remove = %+v", s.questions)
	}
	if s.selected != 0 {
		t.Errorf("selection should be clamped, got %d", s.selected)
	}
	refreshed := false
	for _, m := range msgs {
		if _, ok := m.(screen.RefreshHeaderMsg); ok {
			refreshed = true
		}
	}
	if !refreshed {
		t.Error("removing a mistake should refresh the header count")
	}
}

func TestRemoveFailureKeepsList(t *testing.T) {
	mem := store.NewMemoryStore()
	s := newTestScreenOn(t, mem, "WorldHistory-x1-0", "WorldHistory-x1-1")

	mem.SetFailure(errors.New("disk full"))
	_, cmd := s.Update(key('d'))
	drain(s, cmd)

	if s.errMsg != "" || len(s.questions) != 2 {
		t.Fatalf("failed removal should keep the list: errMsg=%q questions=%d", s.errMsg, len(s.questions))
	}
	view := s.View(80, 24)
	for _, want := range []string{"移除失败", "disk full", "prompt WorldHistory-x1-0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "读取错题失败") {
		t.Error("removal failure is not a load failure")
	}

	mem.SetFailure(nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if strings.Contains(s.View(80, 24), "移除失败") {
		t.Error("next key press should clear the removal error")
	}
	_, cmd = s.Update(key('d'))
	drain(s, cmd)
	if len(s.questions) != 1 || s.questions[0].ID != "WorldHistory-x1-0" {
		t.Fatalf("retry should remove the selected mistake, got %+v", s.questions)
	}
}

func TestPractiseAll(t *testing.T) {
	s := newTestScreen(t, "WorldHistory-x1-0", "WorldHistory-x1-1", "WorldHistory-x2-0")

	_, cmd := s.Update(key('p'))
	msgs := drain(s, cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msgs[0])
	}
	q := push.Screen.(*quiz.QuizScreen)
	if q.Session().Mode() != session.ModeReview {
		t.Errorf("mode = %s, want review", q.Session().Mode())
	}
	if q.Session().TimeLimit() != session.ReviewTimeLimit {
		t.Errorf("time limit = %d, want %d", q.Session().TimeLimit(), session.ReviewTimeLimit)
	}
	if q.Session().Len() != 3 {
		t.Errorf("len = %d, want 3", q.Session().Len())
	}
}

func TestExplainExpandsCard(t *testing.T) {
	s := newTestScreen(t, "WorldHistory-x1-0")

	_, cmd := s.Update(key('e'))
	if !s.expanded["WorldHistory-x1-0"] || !s.thinking["WorldHistory-x1-0"] {
		t.Fatal("explain should expand the card and show the thinking state")
	}
	drain(s, cmd)
	if got := s.explanations["WorldHistory-x1-0"]; got != explain.UnavailableMessage {
		t.Errorf("explanation = %q", got)
	}
}
