package questionbank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustEmbedded(t *testing.T) *Bank {
	t.Helper()
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	return b
}

func TestLoadEmbedded_Counts(t *testing.T) {
	b := mustEmbedded(t)
	if b.Len() != 12 {
		t.Errorf("got %d questions, want 12", b.Len())
	}

	tests := []struct {
		book    Book
		chapter string
		want    int
	}{
		{BookChineseHistory, "s1", 4},
		{BookChineseHistory, "s2", 2},
		{BookChineseHistory, "s3", 1},
		{BookWorldHistory, "x1", 3},
		{BookWorldHistory, "x2", 2},
	}
	for _, tt := range tests {
		got := b.FindByBookAndChapters(tt.book, []string{tt.chapter})
		if len(got) != tt.want {
			t.Errorf("%s/%s: got %d questions, want %d", tt.book, tt.chapter, len(got), tt.want)
		}
		for _, q := range got {
			if q.Book != tt.book || q.Chapter != tt.chapter {
				t.Errorf("question %s has book=%s chapter=%s", q.ID, q.Book, q.Chapter)
			}
		}
	}
}

func TestFindByBookAndChapters_ScopedToBook(t *testing.T) {
	b := mustEmbedded(t)

	// x1 belongs to WorldHistory only.
	if got := b.FindByBookAndChapters(BookChineseHistory, []string{"x1"}); len(got) != 0 {
		t.Errorf("got %d questions for ChineseHistory/x1, want 0", len(got))
	}

	got := b.FindByBookAndChapters(BookChineseHistory, []string{"s1", "s3"})
	if len(got) != 5 {
		t.Errorf("got %d questions for s1+s3, want 5", len(got))
	}
}

func TestFindByBookAndChapters_EmptySelection(t *testing.T) {
	b := mustEmbedded(t)
	if got := b.FindByBookAndChapters(BookChineseHistory, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestFindByBookAndChapters_ReturnsCopy(t *testing.T) {
	b := mustEmbedded(t)
	got := b.FindByBookAndChapters(BookChineseHistory, []string{"s1"})
	got[0].Prompt = "mutated"

	again := b.FindByBookAndChapters(BookChineseHistory, []string{"s1"})
	if again[0].Prompt == "mutated" {
		t.Error("caller mutation leaked into the bank")
	}
}

func TestQuestionIDs(t *testing.T) {
	b := mustEmbedded(t)
	q, ok := b.Get("ChineseHistory-s1-3")
	if !ok {
		t.Fatal("ChineseHistory-s1-3 not found")
	}
	if q.Answer != LabelB {
		t.Errorf("answer = %s, want B", q.Answer)
	}
	if q.Option(q.Answer) != "长江下游的河姆渡文化" {
		t.Errorf("correct option = %q", q.Option(q.Answer))
	}

	// Index restarts per chapter.
	if _, ok := b.Get("ChineseHistory-s2-0"); !ok {
		t.Error("ChineseHistory-s2-0 not found")
	}
	if _, ok := b.Get("ChineseHistory-s2-4"); ok {
		t.Error("ChineseHistory-s2-4 should not exist")
	}
}

func TestChapters(t *testing.T) {
	b := mustEmbedded(t)
	chapters := b.Chapters(BookWorldHistory)
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].ID != "x1" || !strings.Contains(chapters[0].Name, "文明的产生") {
		t.Errorf("first chapter = %+v", chapters[0])
	}
	if ids := b.ChapterIDs(BookChineseHistory); strings.Join(ids, ",") != "s1,s2,s3" {
		t.Errorf("ChapterIDs = %v", ids)
	}
	if b.BookName(BookChineseHistory) != "中外历史纲要(上)" {
		t.Errorf("BookName = %q", b.BookName(BookChineseHistory))
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		label Label
		index int
		valid bool
	}{
		{LabelA, 0, true},
		{LabelD, 3, true},
		{Timeout, -1, false},
		{Label("E"), -1, false},
		{Label(""), -1, false},
	}
	for _, tt := range tests {
		if got := tt.label.Index(); got != tt.index {
			t.Errorf("%q.Index() = %d, want %d", tt.label, got, tt.index)
		}
		if got := tt.label.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.label, got, tt.valid)
		}
	}

	if l, ok := LabelAt(2); !ok || l != LabelC {
		t.Errorf("LabelAt(2) = %q, %v", l, ok)
	}
	if _, ok := LabelAt(4); ok {
		t.Error("LabelAt(4) should be out of range")
	}
}

func TestIsCorrect_TimeoutNeverCorrect(t *testing.T) {
	q := Question{Answer: LabelA}
	if q.IsCorrect(Timeout) {
		t.Error("TIMEOUT scored correct")
	}
	if !q.IsCorrect(LabelA) {
		t.Error("matching label scored incorrect")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"books": [`},
		{"no books", `{}`},
		{"unknown book", `{"books":[{"id":"Geography","chapters":[]}]}`},
		{"bad answer", `{"books":[{"id":"WorldHistory","chapters":[{"id":"x1","name":"n","questions":[["q","a","b","c","d","E"]]}]}]}`},
		{"short row", `{"books":[{"id":"WorldHistory","chapters":[{"id":"x1","name":"n","questions":[["q","a","b","c","A"]]}]}]}`},
		{"empty bank", `{"books":[{"id":"WorldHistory","chapters":[]}]}`},
		{"duplicate chapter", `{"books":[{"id":"WorldHistory","chapters":[
			{"id":"x1","name":"n","questions":[["q","a","b","c","d","A"]]},
			{"id":"x1","name":"n","questions":[["q","a","b","c","d","A"]]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	body := `{"books":[{"id":"WorldHistory","name":"World","chapters":[{"id":"x9","name":"Extra","questions":[["q","a","b","c","d","C"]]}]}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	q, ok := b.Get("WorldHistory-x9-0")
	if !ok || q.Answer != LabelC {
		t.Errorf("got %+v, %v", q, ok)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want *ConfigurationError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}
