package game

import (
	"errors"
	"fmt"
)

// ConfigError reports a game setting outside its allowed bounds.
// The session stays Idle when Start returns one.
type ConfigError struct {
	// Field is the setting that failed: "operation", "question_count", "time_limit".
	Field string

	// Message describes the violated constraint.
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Sentinel errors for session misuse.
var (
	// ErrNotActive is returned when an operation requires an Active session.
	ErrNotActive = errors.New("session is not active")

	// ErrNotFinished is returned by FinalResults before the session finishes.
	ErrNotFinished = errors.New("session is not finished")

	// ErrAlreadyAnswered is returned when the current question was already
	// scored and Advance has not been called yet.
	ErrAlreadyAnswered = errors.New("current question already answered")
)

func fmtBound(name string, got, min, max int) string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", name, min, max, got)
}
