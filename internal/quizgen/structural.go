package quizgen

import "fmt"

// StructuralValidator checks that a generated question has the shape its
// kind requires: non-empty stem, exact option count, unique non-empty
// option ids and labels.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if q.Kind != input.Spec.Kind {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question kind %q does not match requested %q", q.Kind, input.Spec.Kind),
		}
	}

	want := input.Spec.OptionCount
	if q.Kind == KindLikert {
		want = likertScaleSize
	}
	if len(q.Options) != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", want, len(q.Options)),
		}
	}

	seenIDs := make(map[string]bool, len(q.Options))
	seenLabels := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.ID == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "option with empty id",
			}
		}
		if o.Label == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "option with empty label",
			}
		}
		if seenIDs[o.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option id %q", o.ID),
			}
		}
		if seenLabels[o.Label] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option label %q", o.Label),
			}
		}
		seenIDs[o.ID] = true
		seenLabels[o.Label] = true
	}

	return nil
}
