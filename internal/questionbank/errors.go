package questionbank

import "fmt"

// ConfigurationError reports a missing or corrupt question bank.
// The application cannot start without a usable bank.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question bank %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
