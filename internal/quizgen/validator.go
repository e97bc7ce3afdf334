package quizgen

import "fmt"

// Validator checks a generated question for conformance before it is
// handed to the session layer. Implementations must be stateless and safe
// for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated question failed validation.
type ValidationError struct {
	Validator string // name of the validator that failed
	Message   string // human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
