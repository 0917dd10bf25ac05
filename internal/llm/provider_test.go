package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_ReplaysQueue(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(xinhaiReply), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &Error{Kind: KindRateLimited}},
	)

	resp, err := mock.Generate(context.Background(), xinhaiRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != xinhaiReply || resp.Usage.Total() != 15 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if _, err := mock.Generate(context.Background(), xinhaiRequest()); !IsRateLimited(err) {
		t.Fatalf("second reply should be the queued rate limit, got %v", err)
	}
	if mock.CallCount() != 2 || mock.Calls[0].Purpose != "explain" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	mock := NewMockProvider()
	mock.Enqueue(MockResponse{Content: json.RawMessage(xinhaiReply)})

	if _, err := mock.Generate(context.Background(), xinhaiRequest()); err != nil {
		t.Fatalf("enqueued reply: %v", err)
	}
	_, err := mock.Generate(context.Background(), xinhaiRequest())
	if kind, ok := KindOf(err); !ok || kind != KindUnavailable {
		t.Fatalf("drained queue should be unavailable, got %v", err)
	}
}

func TestOfflineProvider_SynthesizesValidExplanation(t *testing.T) {
	p := NewOfflineProvider()

	resp, err := p.Generate(context.Background(), xinhaiRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateReply(historySchema(), resp.Content); err != nil {
		t.Fatalf("offline reply fails schema: %v", err)
	}

	var got struct {
		Context     string `json:"context"`
		Distractors []struct {
			Label string `json:"label"`
		} `json:"distractors"`
	}
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatal(err)
	}
	if got.Context != "[离线示例] Historical background" {
		t.Fatalf("context = %q", got.Context)
	}
	if len(got.Distractors) != 1 || got.Distractors[0].Label != "A" {
		t.Fatalf("distractors = %+v", got.Distractors)
	}
}

func TestOfflineProvider_PrefersQueue(t *testing.T) {
	p := NewOfflineProvider()
	p.Enqueue(MockResponse{Err: errors.New("boom")})

	if _, err := p.Generate(context.Background(), xinhaiRequest()); err == nil {
		t.Fatal("queued error should be returned first")
	}
	if _, err := p.Generate(context.Background(), xinhaiRequest()); err != nil {
		t.Fatalf("then synthesize: %v", err)
	}
}

func TestSampleReply_NoSchema(t *testing.T) {
	if got := string(SampleReply(nil)); !strings.HasPrefix(got, `"[离线示例]`) {
		t.Fatalf("SampleReply(nil) = %s", got)
	}
}

func TestErrorKinds(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), fromStatus(429, errors.New("slow down")))
	if !IsRateLimited(wrapped) {
		t.Fatal("429 should be rate limited through wrapping")
	}
	if kind, _ := KindOf(fromStatus(503, nil)); kind != KindUnavailable {
		t.Fatalf("503 kind = %v", kind)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("plain error has no kind")
	}

	e := &Error{Kind: KindTruncated, Err: errors.New("cut")}
	if e.Error() != "llm: response truncated: cut" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if (&Error{Kind: KindUnavailable}).Error() != "llm: provider unavailable" {
		t.Fatal("bare error message")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "o"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "deepseek"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, in, want string
	}{
		{"gemini", "gemini-flash", "gemini-2.5-flash"},
		{"gemini", "gemini-pro", "gemini-2.5-pro"},
		{"anthropic", "claude-haiku", "claude-haiku-4-5-20251001"},
		{"openai", "gpt-4o-mini", "gpt-4o-mini"},
		{"openai", "gemini-flash", "gemini-flash"},
		{"gemini", "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.provider, tt.in); got != tt.want {
			t.Errorf("resolveModel(%q, %q) = %q, want %q", tt.provider, tt.in, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantInput float64
	}{
		{"gemini-2.5-flash", 0.3},
		{"gemini-2.5-flash-lite", 0.1},
		{"google/gemini-2.5-flash", 0.3},
		{"gpt-4o-mini-2024-07-18", 0.15},
		{"gpt-4o-2024-08-06", 2.5},
		{"claude-haiku-4-5-20251001", 1},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if c == nil {
			t.Errorf("LookupCost(%q) = nil", tt.model)
			continue
		}
		if got := c.Cost(1_000_000, 0); got != tt.wantInput {
			t.Errorf("LookupCost(%q) input = %v, want %v", tt.model, got, tt.wantInput)
		}
	}

	if LookupCost("mock") != nil || LookupCost("gpt-4") != nil {
		t.Fatal("unknown models should have no price")
	}
	if got := LookupCost("claude-sonnet-4-5-20250929").Cost(1000, 1000); got != 0.018 {
		t.Fatalf("sonnet cost = %v, want 0.018", got)
	}
}
