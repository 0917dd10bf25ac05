package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/session"
)

// DocumentStore reads and writes whole JSON documents by key.
type DocumentStore interface {
	// Get decodes the document under key into v. found is false when absent.
	Get(ctx context.Context, key string, v any) (found bool, err error)
	Put(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Ledger maintains the history log, the mistake set and the user profile.
// Each method runs as one critical section, so concurrent callers never
// interleave a load-modify-store cycle.
type Ledger struct {
	mu    sync.Mutex
	store DocumentStore
	now   func() time.Time
	newID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides how history record IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// New creates a Ledger over store.
func New(store DocumentStore, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordSession reconciles a finished session into the ledger. Wrong
// answers always go to the mistake set; only practice sessions count
// toward history. Mistakes are written first, so calling it again after
// a failed history write adds nothing twice. The returned record is nil
// when no history was written.
func (l *Ledger) RecordSession(ctx context.Context, result *session.Result) (*HistoryRecord, error) {
	if err := l.RecordMistakes(ctx, result.Wrong); err != nil {
		return nil, err
	}
	if result.Mode != session.ModePractice || result.Total == 0 {
		return nil, nil
	}
	rec, err := l.RecordHistory(ctx, result)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordHistory prepends a record for result to the history log and trims
// it to MaxHistory entries. A result with no questions is rejected with
// ErrEmptyResult and nothing is written.
func (l *Ledger) RecordHistory(ctx context.Context, result *session.Result) (HistoryRecord, error) {
	if result == nil || result.Total == 0 {
		return HistoryRecord{}, ErrEmptyResult
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	history, err := l.loadHistory(ctx)
	if err != nil {
		return HistoryRecord{}, err
	}

	rec := HistoryRecord{
		ID:             l.newID(),
		Timestamp:      l.now(),
		Book:           result.Book,
		Score:          result.Score(),
		TotalQuestions: result.Total,
		CorrectCount:   result.CorrectCount,
		TimeLimit:      result.TimeLimit,
	}

	updated := make([]HistoryRecord, 0, min(len(history)+1, MaxHistory))
	updated = append(updated, rec)
	updated = append(updated, history...)
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}

	if err := l.put(ctx, KeyHistory, updated); err != nil {
		return HistoryRecord{}, err
	}
	return rec, nil
}

// RecordMistakes upserts questions into the mistake set by ID. Existing
// entries keep their position and take the incoming content; new entries
// are appended. An empty list is a no-op.
func (l *Ledger) RecordMistakes(ctx context.Context, questions []questionbank.Question) error {
	if len(questions) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	mistakes, err := l.loadMistakes(ctx)
	if err != nil {
		return err
	}

	pos := make(map[string]int, len(mistakes))
	for i, q := range mistakes {
		pos[q.ID] = i
	}
	for _, q := range questions {
		if i, ok := pos[q.ID]; ok {
			mistakes[i] = q
			continue
		}
		pos[q.ID] = len(mistakes)
		mistakes = append(mistakes, q)
	}

	return l.put(ctx, KeyMistakes, mistakes)
}

// RemoveMistake deletes the entry with id. Unknown IDs are a no-op.
func (l *Ledger) RemoveMistake(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	mistakes, err := l.loadMistakes(ctx)
	if err != nil {
		return err
	}

	kept := mistakes[:0]
	for _, q := range mistakes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if len(kept) == len(mistakes) {
		return nil
	}
	return l.put(ctx, KeyMistakes, kept)
}

// ClearMistakes empties the mistake set.
func (l *Ledger) ClearMistakes(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delete(ctx, KeyMistakes)
}

// ClearHistory empties the history log.
func (l *Ledger) ClearHistory(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delete(ctx, KeyHistory)
}

// History returns the history log, newest first.
func (l *Ledger) History(ctx context.Context) ([]HistoryRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadHistory(ctx)
}

// Mistakes returns the mistake set in insertion order.
func (l *Ledger) Mistakes(ctx context.Context) ([]questionbank.Question, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadMistakes(ctx)
}

// UserPrefs returns the stored profile, or nil if none has been saved.
func (l *Ledger) UserPrefs(ctx context.Context) (*UserPrefs, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var prefs UserPrefs
	found, err := l.store.Get(ctx, KeyUserPrefs, &prefs)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Key: KeyUserPrefs, Err: err}
	}
	if !found {
		return nil, nil
	}
	return &prefs, nil
}

// SaveUserPrefs replaces the stored profile.
func (l *Ledger) SaveUserPrefs(ctx context.Context, name string, gender Gender) error {
	if !gender.Valid() {
		return ErrInvalidGender
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.put(ctx, KeyUserPrefs, UserPrefs{Name: name, Gender: gender})
}

func (l *Ledger) loadHistory(ctx context.Context) ([]HistoryRecord, error) {
	var history []HistoryRecord
	if _, err := l.store.Get(ctx, KeyHistory, &history); err != nil {
		return nil, &PersistenceError{Op: "read", Key: KeyHistory, Err: err}
	}
	return history, nil
}

func (l *Ledger) loadMistakes(ctx context.Context) ([]questionbank.Question, error) {
	var mistakes []questionbank.Question
	if _, err := l.store.Get(ctx, KeyMistakes, &mistakes); err != nil {
		return nil, &PersistenceError{Op: "read", Key: KeyMistakes, Err: err}
	}
	return mistakes, nil
}

func (l *Ledger) put(ctx context.Context, key string, v any) error {
	if err := l.store.Put(ctx, key, v); err != nil {
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (l *Ledger) delete(ctx context.Context, key string) error {
	if err := l.store.Delete(ctx, key); err != nil {
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}
