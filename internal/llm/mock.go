package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued replies in order and records every request.
// Once the queue is empty it synthesizes a schema-valid reply if built with
// NewOfflineProvider, and fails with KindUnavailable otherwise.
type MockProvider struct {
	mu         sync.Mutex
	queue      []MockResponse
	synthesize bool

	Calls []Request
}

// NewMockProvider returns a MockProvider with the given queue.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewOfflineProvider returns a MockProvider that answers every structured
// request with a placeholder reply built from the request schema. It backs
// RECITEKING_LLM_PROVIDER=mock, which exercises the tutor UI without a key.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{synthesize: true}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	if len(m.queue) == 0 {
		if !m.synthesize {
			return nil, unavailable(errors.New("mock queue is empty"))
		}
		return finishReply(req, SampleReply(req.Schema), Usage{}, m.ModelID(), stopEnd)
	}

	next := m.queue[0]
	m.queue = m.queue[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: stopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Enqueue adds replies to the end of the queue.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SampleReply builds a JSON value that satisfies s: every string is the
// property's description marked as offline text, enums take their first
// value and arrays hold one sample item. A nil schema yields a JSON string.
func SampleReply(s *Schema) json.RawMessage {
	if s == nil {
		raw, _ := json.Marshal(offlinePrefix + "no schema requested")
		return raw
	}
	raw, err := json.Marshal(sampleValue(s.Definition, s.Description))
	if err != nil {
		return json.RawMessage(`null`)
	}
	return raw
}

const offlinePrefix = "[离线示例] "

func sampleValue(def map[string]any, hint string) any {
	if desc, ok := def["description"].(string); ok && desc != "" {
		hint = desc
	}
	if enum := stringsOf(def["enum"]); len(enum) > 0 {
		return enum[0]
	}

	switch def["type"] {
	case "object":
		out := make(map[string]any)
		props, _ := def["properties"].(map[string]any)
		for name, p := range props {
			if pd, ok := p.(map[string]any); ok {
				out[name] = sampleValue(pd, name)
			}
		}
		return out
	case "array":
		items, _ := def["items"].(map[string]any)
		if items == nil {
			return []any{}
		}
		return []any{sampleValue(items, hint)}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	default:
		return offlinePrefix + hint
	}
}
