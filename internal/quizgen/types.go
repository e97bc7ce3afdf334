package quizgen

// Grade is the learner's class level. Only these two values are valid.
type Grade string

const (
	Grade10 Grade = "10th"
	Grade12 Grade = "12th"
)

// Valid reports whether g is one of the enumerated grades.
func (g Grade) Valid() bool {
	return g == Grade10 || g == Grade12
}

// Kind is the question type.
type Kind string

const (
	// KindForcedChoice is a single-answer question with a small fixed set
	// of mutually exclusive options and no correct answer.
	KindForcedChoice Kind = "forced-choice"

	// KindLikert is a statement rated on the fixed 1-5 agreement scale.
	KindLikert Kind = "likert"

	// KindMicroSkill is a scenario question assessing the preferred
	// approach to a small task. Grade-12 track only.
	KindMicroSkill Kind = "micro-skill"
)

// Option is one selectable answer. IDs are assigned locally (fresh UUIDs
// per generation) because the generator is not trusted to produce globally
// unique ids across calls.
type Option struct {
	ID    string
	Label string
}

// Question is a generated quiz question ready for display.
type Question struct {
	ID      string
	Text    string
	Kind    Kind
	Options []Option
}

// OptionByID returns the option with the given id, or false.
func (q *Question) OptionByID(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Answer is a denormalized (question text, answer text) pair. The generator
// consumes prior Q/A as plain text context, so no id reference is kept.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateInput holds all context needed to generate the next question.
type GenerateInput struct {
	// Grade is the learner's class level.
	Grade Grade

	// Stream is the 12th-grade stream, empty for grade 10.
	Stream string

	// Spec is the policy-determined slot specification for this index.
	Spec Spec

	// History contains every (question, answer) pair from the session so
	// far, in order. The full history is threaded into each generation.
	History []Answer
}
