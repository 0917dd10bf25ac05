package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/reciteking/internal/questionbank"
)

// Session drives one quiz attempt one question at a time.
//
// Answers and countdown ticks compete for the same transition. Both run
// under mu and check the answered latch first, so whichever arrives first
// wins and the other becomes a no-op. Ticks carry the index they were
// scheduled for, so a tick left over from an earlier question is ignored.
type Session struct {
	mu sync.Mutex

	id        string
	mode      Mode
	questions []questionbank.Question
	timeLimit int

	phase     Phase
	index     int
	answered  bool
	remaining int
	correct   int
	wrong     []questionbank.Question
	outcomes  []Outcome
}

// New starts a session over questions. A session with no questions is
// finished immediately. Time limits below one second are raised to one.
func New(questions []questionbank.Question, timeLimit int, mode Mode) *Session {
	if timeLimit < 1 {
		timeLimit = 1
	}
	s := &Session{
		id:        uuid.New().String(),
		mode:      mode,
		questions: slices.Clone(questions),
		timeLimit: timeLimit,
		phase:     PhaseAwaitingAnswer,
		remaining: timeLimit,
	}
	if len(s.questions) == 0 {
		s.phase = PhaseFinished
		s.remaining = 0
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode returns whether this is a practice or review session.
func (s *Session) Mode() Mode {
	return s.mode
}

// TimeLimit returns the per-question limit in seconds.
func (s *Session) TimeLimit() int {
	return s.timeLimit
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Answer submits label for the live question. It returns false without
// changing anything if the label is not A-D, the question was already
// answered or timed out, or the session is not awaiting an answer.
func (s *Session) Answer(label questionbank.Label) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAwaitingAnswer || s.answered || !label.Valid() {
		return Outcome{}, false
	}
	return s.record(label), true
}

// Tick advances the countdown by one second for the question at index.
// When the countdown reaches zero with no answer latched, a TIMEOUT outcome
// is recorded and returned with true. Ticks for any other index, or after
// the latch is set, are ignored.
func (s *Session) Tick(index int) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAwaitingAnswer || s.answered || index != s.index {
		return Outcome{}, false
	}

	s.remaining--
	if s.remaining > 0 {
		return Outcome{}, false
	}
	s.remaining = 0
	return s.record(questionbank.Timeout), true
}

// Live reports whether ticks for index would still be counted.
func (s *Session) Live(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseAwaitingAnswer && !s.answered && index == s.index
}

// record latches the live question. Caller holds mu.
func (s *Session) record(label questionbank.Label) Outcome {
	q := s.questions[s.index]
	correct := q.IsCorrect(label)

	elapsed := s.timeLimit - s.remaining
	elapsed = max(0, min(elapsed, s.timeLimit))

	o := Outcome{
		QuestionID:  q.ID,
		Selected:    label,
		Correct:     correct,
		ElapsedSecs: elapsed,
	}

	s.answered = true
	s.phase = PhaseAnswered
	s.outcomes = append(s.outcomes, o)
	if correct {
		s.correct++
	} else {
		s.wrong = append(s.wrong, q)
	}
	return o
}

// Advance moves past an answered question, finishing the session after
// the last one. It returns false unless the session is in PhaseAnswered.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAnswered {
		return false
	}

	s.index++
	if s.index >= len(s.questions) {
		s.phase = PhaseFinished
		s.remaining = 0
		return true
	}

	s.phase = PhaseAwaitingAnswer
	s.answered = false
	s.remaining = s.timeLimit
	return true
}

// Abandon discards an unfinished session. Finished sessions cannot be abandoned.
func (s *Session) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseFinished || s.phase == PhaseAbandoned {
		return false
	}
	s.phase = PhaseAbandoned
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		SessionID:    s.id,
		Mode:         s.mode,
		Phase:        s.phase,
		Index:        s.index,
		Total:        len(s.questions),
		TimeLimit:    s.timeLimit,
		Remaining:    s.remaining,
		CorrectCount: s.correct,
		WrongCount:   len(s.wrong),
	}
	if s.index < len(s.questions) && s.phase != PhaseFinished {
		q := s.questions[s.index]
		st.Question = &q
	}
	if s.phase == PhaseAnswered && len(s.outcomes) > 0 {
		o := s.outcomes[len(s.outcomes)-1]
		st.Outcome = &o
	}
	return st
}

// Result returns the session result once the session has finished.
func (s *Session) Result() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinished {
		return nil, false
	}

	r := &Result{
		SessionID:    s.id,
		Mode:         s.mode,
		TimeLimit:    s.timeLimit,
		Total:        len(s.questions),
		CorrectCount: s.correct,
		Wrong:        slices.Clone(s.wrong),
		Outcomes:     slices.Clone(s.outcomes),
		Questions:    slices.Clone(s.questions),
	}
	if len(s.questions) > 0 {
		r.Book = s.questions[0].Book
	}
	return r, true
}
