package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func explanation() MockResponse {
	return MockResponse{Content: json.RawMessage(xinhaiReply)}
}

func TestRetry(t *testing.T) {
	down := MockResponse{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}}
	offSchema := MockResponse{Err: invalidResponse(json.RawMessage(`{}`), errors.New("missing context"))}

	tests := []struct {
		name      string
		replies   []MockResponse
		wantKind  ErrorKind
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{explanation()}, 0, false, 1},
		{"unavailable then ok", []MockResponse{down, explanation()}, 0, false, 2},
		{"rate limited then ok", []MockResponse{{Err: &Error{Kind: KindRateLimited, RetryAfter: time.Millisecond}}, explanation()}, 0, false, 2},
		{"plain error retried", []MockResponse{{Err: errors.New("reset by peer")}, explanation()}, 0, false, 2},
		{"attempts exhausted", []MockResponse{down, down, down, explanation()}, KindUnavailable, true, 3},
		{"truncated not retried", []MockResponse{{Err: &Error{Kind: KindTruncated}}, explanation()}, KindTruncated, true, 1},
		{"invalid retried once", []MockResponse{offSchema, offSchema, explanation()}, KindInvalidResponse, true, 2},
		{"invalid then ok", []MockResponse{offSchema, explanation()}, 0, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), xinhaiRequest())

			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
			if !tt.wantErr {
				if err != nil || string(resp.Content) != xinhaiReply {
					t.Fatalf("got %v, %v", resp, err)
				}
				return
			}
			if kind, ok := KindOf(err); !ok || kind != tt.wantKind {
				t.Fatalf("got %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	down := MockResponse{Err: &Error{Kind: KindUnavailable}}
	mock := NewMockProvider(down, down, explanation())
	cfg := retryConfig()
	cfg.InitialWait, cfg.MaxWait = time.Hour, time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(mock, cfg).Generate(ctx, xinhaiRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ClampsAttempts(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindUnavailable}}, explanation())
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), xinhaiRequest()); err == nil {
		t.Fatal("zero attempts should still make one call and fail")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	if WithRetry(mock, RetryConfig{}).ModelID() != "mock" {
		t.Fatal("ModelID should delegate")
	}
}

func TestJitter(t *testing.T) {
	for range 100 {
		d := jitter(100 * time.Millisecond)
		if d < 80*time.Millisecond || d > 120*time.Millisecond {
			t.Fatalf("jitter = %v, outside 20%%", d)
		}
	}
}
