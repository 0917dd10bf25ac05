package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/router"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/session"
	"github.com/abhisek/reciteking/internal/ui/components"
	"github.com/abhisek/reciteking/internal/ui/layout"
)

// QuizScreen plays a session one question at a time with a per-question
// countdown.
type QuizScreen struct {
	svc  screen.Services
	sess *session.Session

	options components.OptionList
	current int // index the options were built for

	explanation string
	explaining  bool

	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen over questions.
func New(svc screen.Services, questions []questionbank.Question, timeLimit int, mode session.Mode) *QuizScreen {
	q := &QuizScreen{
		svc:  svc,
		sess: session.New(questions, timeLimit, mode),
	}
	q.resetOptions()
	return q
}

// Session exposes the underlying session.
func (q *QuizScreen) Session() *session.Session {
	return q.sess
}

func (q *QuizScreen) Init() tea.Cmd {
	st := q.sess.Snapshot()
	if st.Phase == session.PhaseFinished {
		return q.finish()
	}
	return tick(st.Index)
}

func (q *QuizScreen) Title() string {
	if q.sess.Mode() == session.ModeReview {
		return "错题再背"
	}
	return "单人测评"
}

// HandlesEscape keeps the router from popping mid-quiz; Esc asks for
// confirmation instead.
func (q *QuizScreen) HandlesEscape() bool {
	return !q.done
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirmQuit {
		return []layout.KeyHint{
			{Key: "y", Description: "Quit quiz"},
			{Key: "n", Description: "Keep going"},
		}
	}
	st := q.sess.Snapshot()
	if st.Phase == session.PhaseAnswered {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if q.svc.Explainer.Available() {
			hints = append(hints, layout.KeyHint{Key: "e", Description: "AI 解析"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if o, timedOut := q.sess.Tick(msg.index); timedOut {
			q.options.Reveal(o.Selected)
			return q, nil
		}
		if q.sess.Live(msg.index) {
			return q, tick(msg.index)
		}
		return q, nil

	case explanationMsg:
		st := q.sess.Snapshot()
		if st.Question != nil && st.Question.ID == msg.questionID {
			q.explanation = msg.text
			q.explaining = false
		}
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.confirmQuit {
		switch key {
		case "y", "Y":
			q.sess.Abandon()
			q.done = true
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			q.confirmQuit = false
		}
		return q, nil
	}

	if key == "esc" {
		q.confirmQuit = true
		return q, nil
	}

	st := q.sess.Snapshot()
	switch st.Phase {
	case session.PhaseAwaitingAnswer:
		var label questionbank.Label
		var picked bool
		q.options, label, picked = q.options.Update(msg)
		if !picked {
			return q, nil
		}
		if o, ok := q.sess.Answer(label); ok {
			q.options.Reveal(o.Selected)
		}
		return q, nil

	case session.PhaseAnswered:
		switch key {
		case "enter", "space", "n":
			return q, q.advance()
		case "e":
			return q, q.requestExplanation(st)
		}
	}
	return q, nil
}

// advance moves to the next question or hands over to the result screen.
func (q *QuizScreen) advance() tea.Cmd {
	if !q.sess.Advance() {
		return nil
	}
	st := q.sess.Snapshot()
	if st.Phase == session.PhaseFinished {
		return q.finish()
	}
	q.resetOptions()
	return tick(st.Index)
}

func (q *QuizScreen) finish() tea.Cmd {
	res, ok := q.sess.Result()
	if !ok {
		return nil
	}
	q.done = true
	next := NewResult(q.svc, res)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) resetOptions() {
	st := q.sess.Snapshot()
	q.current = st.Index
	q.explanation = ""
	q.explaining = false
	if st.Question != nil {
		q.options = components.NewOptionList(*st.Question)
	}
}

func (q *QuizScreen) requestExplanation(st session.State) tea.Cmd {
	if q.explaining || q.explanation != "" || st.Question == nil {
		return nil
	}
	q.explaining = true
	question := *st.Question
	explainer := q.svc.Explainer
	return func() tea.Msg {
		return explanationMsg{
			questionID: question.ID,
			text:       explainer.Explain(context.Background(), question),
		}
	}
}
