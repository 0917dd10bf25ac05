package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a reply for a Request. Implementations return *Error
// on failure.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, used in event logs.
	ModelID() string
}

// Request is one single-turn call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON matching it. The reply is validated
	// before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// Purpose labels the call in the llm_requests log (e.g. "explain").
	Purpose string
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output. Name is kebab-case
// and doubles as the OpenAI schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a successful reply.
type Response struct {
	// Content is the JSON reply when a Schema was set, else the raw text.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the call.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)
