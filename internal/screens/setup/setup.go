package setup

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/screens/quiz"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldGender
	fieldBook
	fieldChapters
	fieldTime
	fieldCount
	fieldStart
	numFields
)

const nameLimit = 20

type prefsLoadedMsg struct {
	prefs *ledger.UserPrefs
}

// SetupScreen collects the learner profile and the practice selection.
type SetupScreen struct {
	svc screen.Services

	focus   field
	name    components.TextInput
	gender  ledger.Gender
	books   []questionbank.Book
	book    int
	chapter int // cursor in the chapter list
	chosen  map[string]bool
	time    int // index into session.TimeLimitPresets
	count   int // index into session.QuestionCountPresets

	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen with the default selection: no chapters, a
// 20 second limit and 10 questions.
func New(svc screen.Services) *SetupScreen {
	s := &SetupScreen{
		svc:    svc,
		name:   components.NewTextInput("你的名字", "", nameLimit),
		gender: ledger.GenderBoy,
		books:  svc.Bank.Books(),
		chosen: make(map[string]bool),
		time:   slices.Index(session.TimeLimitPresets, session.DefaultTimeLimit),
		count:  slices.Index(session.QuestionCountPresets, session.DefaultQuestionCount),
	}
	s.name.Focus()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	focus := s.name.Focus()
	if s.svc.Ledger == nil {
		return focus
	}
	return tea.Batch(focus, func() tea.Msg {
		prefs, err := s.svc.Ledger.UserPrefs(context.Background())
		if err != nil {
			return prefsLoadedMsg{}
		}
		return prefsLoadedMsg{prefs: prefs}
	})
}

func (s *SetupScreen) Title() string {
	return "单人测评"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
	}
	switch s.focus {
	case fieldChapters:
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Toggle"},
			layout.KeyHint{Key: "a", Description: "一键全选"},
			layout.KeyHint{Key: "x", Description: "一键取消"},
		)
	case fieldGender, fieldBook, fieldTime, fieldCount:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// Book returns the selected book.
func (s *SetupScreen) Book() questionbank.Book {
	return s.books[s.book]
}

// Selection returns the practice selection as currently configured.
// Chapters are listed in book order.
func (s *SetupScreen) Selection() session.Selection {
	var chapters []string
	for _, id := range s.svc.Bank.ChapterIDs(s.Book()) {
		if s.chosen[id] {
			chapters = append(chapters, id)
		}
	}
	return session.Selection{
		Book:          s.Book(),
		Chapters:      chapters,
		QuestionCount: session.QuestionCountPresets[s.count],
		TimeLimit:     session.TimeLimitPresets[s.time],
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsLoadedMsg:
		if msg.prefs != nil {
			s.name.Model.SetValue(msg.prefs.Name)
			if msg.prefs.Gender.Valid() {
				s.gender = msg.prefs.Gender
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.focus == fieldChapters {
		last := len(s.svc.Bank.Chapters(s.Book())) - 1
		switch {
		case (key == "down" || key == "j") && s.chapter < last:
			s.chapter++
			return s, nil
		case (key == "up" || key == "k") && s.chapter > 0:
			s.chapter--
			return s, nil
		}
	}

	switch key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "enter":
		if s.focus == fieldStart || s.focus == fieldName {
			return s, s.start()
		}
		return s, s.setFocus(s.focus + 1)
	}

	switch s.focus {
	case fieldName:
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		s.errMsg = ""
		return s, cmd

	case fieldGender:
		if key == "left" || key == "right" || key == "space" {
			if s.gender == ledger.GenderBoy {
				s.gender = ledger.GenderGirl
			} else {
				s.gender = ledger.GenderBoy
			}
		}

	case fieldBook:
		if next, ok := cycle(s.book, len(s.books), key); ok && next != s.book {
			s.book = next
			// Chapter IDs are scoped to their book.
			clear(s.chosen)
			s.chapter = 0
		}

	case fieldChapters:
		chapters := s.svc.Bank.Chapters(s.Book())
		switch key {
		case "space":
			if len(chapters) > 0 {
				id := chapters[s.chapter].ID
				s.chosen[id] = !s.chosen[id]
			}
		case "a":
			for _, c := range chapters {
				s.chosen[c.ID] = true
			}
		case "x":
			clear(s.chosen)
		}
		s.errMsg = ""

	case fieldTime:
		if next, ok := cycle(s.time, len(session.TimeLimitPresets), key); ok {
			s.time = next
		}

	case fieldCount:
		if next, ok := cycle(s.count, len(session.QuestionCountPresets), key); ok {
			s.count = next
		}
	}
	return s, nil
}

func cycle(i, n int, key string) (int, bool) {
	switch key {
	case "left", "h":
		return (i + n - 1) % n, true
	case "right", "l", "space":
		return (i + 1) % n, true
	}
	return i, false
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldName {
		return s.name.Focus()
	}
	s.name.Blur()
	return nil
}

// start validates the selection, saves the profile and opens the quiz.
func (s *SetupScreen) start() tea.Cmd {
	sel := s.Selection()
	questions, err := s.svc.Builder.Build(sel)
	if errors.Is(err, session.ErrNoChapters) {
		s.errMsg = "请至少选择一个章节 (Please select at least one chapter)"
		return nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if len(questions) == 0 {
		s.errMsg = "所选章节暂无题目 (No questions in the selected chapters)"
		return nil
	}

	if s.svc.Ledger != nil {
		if err := s.svc.Ledger.SaveUserPrefs(context.Background(), s.name.Value(), s.gender); err != nil {
			s.errMsg = fmt.Sprintf("保存资料失败: %v", err)
			return nil
		}
	}

	q := quiz.New(s.svc, questions, sel.TimeLimit, session.ModePractice)
	return tea.Batch(
		screen.RefreshHeader,
		func() tea.Msg { return router.PushScreenMsg{Screen: q} },
	)
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	rows = append(rows, components.FieldLabel("姓名", s.focus == fieldName)+" "+s.name.View())

	rows = append(rows, components.FieldLabel("性别", s.focus == fieldGender)+" "+components.ChipRow([]components.Chip{
		{Label: "男生", On: s.gender == ledger.GenderBoy},
		{Label: "女生", On: s.gender == ledger.GenderGirl},
	}, -1))

	bookChips := make([]components.Chip, len(s.books))
	for i, b := range s.books {
		bookChips[i] = components.Chip{Label: s.svc.Bank.BookName(b), On: i == s.book}
	}
	rows = append(rows, components.FieldLabel("教材", s.focus == fieldBook)+" "+components.ChipRow(bookChips, -1))

	rows = append(rows, s.renderChapters(cw))

	timeChips := make([]components.Chip, len(session.TimeLimitPresets))
	for i, t := range session.TimeLimitPresets {
		timeChips[i] = components.Chip{Label: fmt.Sprintf("%ds", t), On: i == s.time}
	}
	rows = append(rows, components.FieldLabel("每题限时", s.focus == fieldTime)+" "+components.ChipRow(timeChips, -1))

	countChips := make([]components.Chip, len(session.QuestionCountPresets))
	for i, n := range session.QuestionCountPresets {
		label := fmt.Sprintf("%d题", n)
		if n == session.AllQuestions {
			label = "全部"
		}
		countChips[i] = components.Chip{Label: label, On: i == s.count}
	}
	rows = append(rows, components.FieldLabel("题目数量", s.focus == fieldCount)+" "+components.ChipRow(countChips, -1))

	btn := components.NewButton("开始背书 Start")
	btn.Focused = s.focus == fieldStart
	rows = append(rows, layout.Centered(btn.View(), cw))

	if s.errMsg != "" {
		rows = append(rows, layout.Centered(theme.Incorrect.Render(s.errMsg), cw))
	}

	body := lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *SetupScreen) renderChapters(cw int) string {
	focused := s.focus == fieldChapters
	chapters := s.svc.Bank.Chapters(s.Book())

	n := 0
	for _, c := range chapters {
		if s.chosen[c.ID] {
			n++
		}
	}
	header := components.FieldLabel("章节", focused) + " " +
		theme.Hint.Render(fmt.Sprintf("已选 %d/%d", n, len(chapters)))

	lines := []string{header}
	for i, c := range chapters {
		box := "[ ]"
		if s.chosen[c.ID] {
			box = "[✓]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(cw)
		prefix := "  "
		if focused && i == s.chapter {
			style = style.Foreground(theme.Gold).Bold(true)
			prefix = "▸ "
		}
		if s.chosen[c.ID] && !(focused && i == s.chapter) {
			style = style.Foreground(theme.Jade)
		}
		lines = append(lines, style.Render(prefix+box+" "+c.Name))
	}
	return strings.Join(lines, "\n")
}
