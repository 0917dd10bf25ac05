package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies provider failures for retry and reporting.
type ErrorKind int

const (
	// KindUnavailable covers network failures, 5xx and unknown errors.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 from the provider.
	KindRateLimited
	// KindInvalidResponse means the reply did not match the request schema.
	KindInvalidResponse
	// KindTruncated means the reply hit the MaxTokens limit.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every Provider in this package.
type Error struct {
	Kind ErrorKind

	// RetryAfter is the server's requested wait, when it sent one.
	RetryAfter time.Duration

	// Content is the raw reply for invalid or truncated responses.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of an *Error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsRateLimited reports whether err is a provider rate limit.
func IsRateLimited(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindRateLimited
}

func unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalidResponse(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: err}
}

// fromStatus maps an SDK error carrying an HTTP status to an *Error.
func fromStatus(status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return unavailable(err)
}
