package session

import (
	"github.com/abhisek/reciteking/internal/questionbank"
)

// Selection is the learner's choice of what to practise.
type Selection struct {
	Book     questionbank.Book
	Chapters []string

	// QuestionCount caps the session length. AllQuestions keeps every match.
	QuestionCount int

	// TimeLimit is the per-question countdown in seconds.
	TimeLimit int
}

// AllQuestions is the QuestionCount sentinel for "use every matching question".
const AllQuestions = 0

// ReviewTimeLimit is the generous per-question limit used for mistake review.
const ReviewTimeLimit = 60

// DefaultTimeLimit and DefaultQuestionCount are the setup screen defaults.
const (
	DefaultTimeLimit     = 20
	DefaultQuestionCount = 10
)

// TimeLimitPresets are the per-question limits offered on the setup screen.
var TimeLimitPresets = []int{10, 20, 60}

// QuestionCountPresets are the session lengths offered on the setup screen.
var QuestionCountPresets = []int{5, 10, 20, AllQuestions}

// Mode distinguishes a regular practice session from a mistake review.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeReview   Mode = "review"
)
