package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/abhisek/reciteking/internal/llm"
	"github.com/abhisek/reciteking/internal/questionbank"
)

// Purpose labels explanation requests in the LLM event log.
const Purpose = "explain"

// Explainer asks an LLM to explain quiz questions. Successful explanations
// are cached per question ID for the lifetime of the Explainer.
type Explainer struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	cache map[string]*Explanation
}

// Option configures an Explainer.
type Option func(*Explainer)

// WithTimeout bounds each call to the provider.
func WithTimeout(d time.Duration) Option {
	return func(e *Explainer) {
		e.cfg.Timeout = d
	}
}

// WithConfig replaces the generation settings.
func WithConfig(cfg Config) Option {
	return func(e *Explainer) {
		e.cfg = cfg
	}
}

// New creates an Explainer. A nil provider yields an Explainer that
// always reports the tutor as unavailable.
func New(provider llm.Provider, opts ...Option) *Explainer {
	e := &Explainer{
		provider: provider,
		cfg:      DefaultConfig(),
		cache:    make(map[string]*Explanation),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether a provider is configured.
func (e *Explainer) Available() bool {
	return e != nil && e.provider != nil
}

// Explain returns tutor text for q. It never fails: on any error it logs
// the cause and returns one of the fixed fallback messages.
func (e *Explainer) Explain(ctx context.Context, q questionbank.Question) string {
	exp, err := e.Generate(ctx, q)
	switch {
	case err == nil:
		return exp.Markdown()
	case errors.Is(err, ErrNotConfigured):
		return UnavailableMessage
	case errors.Is(err, errEmpty):
		log.Printf("explain %s: empty response", q.ID)
		return EmptyMessage
	default:
		log.Printf("%v", err)
		return FallbackMessage
	}
}

var errEmpty = errors.New("empty explanation")

// Generate asks the provider for a structured explanation of q. Provider
// failures and empty replies are returned as *ServiceError.
func (e *Explainer) Generate(ctx context.Context, q questionbank.Question) (*Explanation, error) {
	if !e.Available() {
		return nil, ErrNotConfigured
	}

	if cached := e.cached(q.ID); cached != nil {
		return cached, nil
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
		Purpose:     Purpose,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, &ServiceError{QuestionID: q.ID, Err: err}
	}
	if resp == nil || len(resp.Content) == 0 {
		return nil, &ServiceError{QuestionID: q.ID, Err: errEmpty}
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ServiceError{QuestionID: q.ID, Err: fmt.Errorf("parse explanation: %w", err)}
	}
	if out.Empty() {
		return nil, &ServiceError{QuestionID: q.ID, Err: errEmpty}
	}
	out.QuestionID = q.ID

	e.mu.Lock()
	e.cache[q.ID] = &out
	e.mu.Unlock()

	return &out, nil
}

func (e *Explainer) cached(id string) *Explanation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache[id]
}
