package quizgen

import "context"

// Generator produces quiz questions for a policy-determined slot.
type Generator interface {
	// Generate produces a single question for the given input context.
	// The returned question carries fresh unique ids for itself and every
	// option. All configured validators have passed before it is returned.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}
