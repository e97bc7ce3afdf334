package quiz

import "fmt"

// ValidationError means the caller supplied input violating a precondition:
// missing grade, missing required stream, an invalid selection, or profile
// text that is too short. Messages are written to be shown inline by a UI.
type ValidationError struct {
	Field   string // which input was wrong
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GenerationError means the content generator failed, timed out, or
// returned a non-conforming value. It is recoverable: the session stays in
// its last good state and the caller decides whether to retry the step.
// The core never retries generation on its own.
type GenerationError struct {
	Step string // "question" or "recommendation"
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StaleResponseError means a generation result arrived for a question index
// that no longer matches the session's expected index (the caller moved on
// or went back while the request was in flight). The result is discarded
// and the session is unchanged; this is never shown to the user.
type StaleResponseError struct {
	Want int // the session's current expected index
	Got  int // the index the response was issued for
}

func (e *StaleResponseError) Error() string {
	return fmt.Sprintf("stale question response: issued for index %d, session expects %d", e.Got, e.Want)
}
