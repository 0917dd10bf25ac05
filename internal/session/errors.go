package session

import "fmt"

// ValidationError reports a user-correctable problem with a Selection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrNoChapters is returned by Build when the selection names no chapter.
var ErrNoChapters = &ValidationError{Field: "chapters", Message: "select at least one chapter"}
