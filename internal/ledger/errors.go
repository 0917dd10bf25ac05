package ledger

import (
	"errors"
	"fmt"
)

// PersistenceError reports a failed read or write of a stored document.
// The caller's in-memory data is untouched, so the operation can be retried.
type PersistenceError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrEmptyResult is returned when recording history for a session with no questions.
var ErrEmptyResult = errors.New("session has no questions")

// ErrInvalidGender is returned by SaveUserPrefs for a gender other than boy or girl.
var ErrInvalidGender = errors.New("gender must be boy or girl")
