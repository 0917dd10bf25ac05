package explain

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Generate when no provider is available.
var ErrNotConfigured = errors.New("AI tutor not configured")

// ServiceError reports a failed call to the explanation provider. Err is
// the provider error (rate limit, timeout, invalid or empty response).
type ServiceError struct {
	QuestionID string
	Err        error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("explain %s: %v", e.QuestionID, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
