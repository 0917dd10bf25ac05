package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/abhisek/reciteking/internal/store"
)

type loggingProvider struct {
	inner Provider
	name  string
	repo  store.EventRepo
}

// WithLogging appends one llm_requests row per call. name is the backend
// ("gemini", "openai", ...). Failures to write the row are logged and do
// not affect the call.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &loggingProvider{inner: p, name: name, repo: repo}
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     req.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: requestLog(req),
	}
	if ev.Purpose == "" {
		ev.Purpose = "unknown"
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && len(e.Content) > 0 {
			ev.ResponseBody = string(e.Content)
		}
	}

	// The row is written even if the caller's context has expired.
	if werr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		log.Printf("llm: record %s request: %v", ev.Purpose, werr)
	}
	return resp, err
}

// loggedRequest is the request_body column format.
type loggedRequest struct {
	System    string         `json:"system,omitempty"`
	Messages  []loggedTurn   `json:"messages"`
	Schema    string         `json:"schema,omitempty"`
	Format    map[string]any `json:"format,omitempty"`
	MaxTokens int            `json:"max_tokens,omitempty"`
}

type loggedTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func requestLog(req Request) string {
	lr := loggedRequest{System: req.System, MaxTokens: req.MaxTokens}
	for _, m := range req.Messages {
		lr.Messages = append(lr.Messages, loggedTurn{Role: m.Role, Content: m.Content})
	}
	if req.Schema != nil {
		lr.Schema = req.Schema.Name
		lr.Format = req.Schema.Definition
	}
	raw, err := json.MarshalIndent(lr, "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}
