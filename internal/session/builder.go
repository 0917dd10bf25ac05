package session

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/reciteking/internal/questionbank"
)

// Repository is the question source a Builder draws from.
type Repository interface {
	FindByBookAndChapters(book questionbank.Book, chapterIDs []string) []questionbank.Question
}

// Builder turns a Selection into an ordered, shuffled question list.
type Builder struct {
	repo Repository
	rng  *rand.Rand
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRand sets the random source used for shuffling. Tests pass a seeded source.
func WithRand(rng *rand.Rand) BuilderOption {
	return func(b *Builder) {
		b.rng = rng
	}
}

// NewBuilder creates a Builder over repo.
func NewBuilder(repo Repository, opts ...BuilderOption) *Builder {
	b := &Builder{repo: repo}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build filters the repository by the selection, shuffles the matches and
// truncates them to QuestionCount. An empty result is not an error; callers
// decide whether to start a zero-question session.
func (b *Builder) Build(sel Selection) ([]questionbank.Question, error) {
	if len(sel.Chapters) == 0 {
		return nil, ErrNoChapters
	}

	questions := slices.Clone(b.repo.FindByBookAndChapters(sel.Book, sel.Chapters))
	b.shuffle(questions)

	if sel.QuestionCount > AllQuestions && sel.QuestionCount < len(questions) {
		questions = questions[:sel.QuestionCount]
	}
	return questions, nil
}

// BuildReview returns a shuffled copy of mistakes for a review session.
func (b *Builder) BuildReview(mistakes []questionbank.Question) []questionbank.Question {
	questions := slices.Clone(mistakes)
	b.shuffle(questions)
	return questions
}

// shuffle permutes qs in place with a Fisher-Yates pass.
func (b *Builder) shuffle(qs []questionbank.Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if b.rng != nil {
		b.rng.Shuffle(len(qs), swap)
		return
	}
	rand.Shuffle(len(qs), swap)
}
