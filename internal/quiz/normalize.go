package quiz

import (
	"fmt"
	"strings"

	"github.com/yashir5686/disha-portal/internal/quizgen"
)

// answerSeparator joins multi-select labels in the canonical answer text.
const answerSeparator = ", "

// NormalizeAnswer converts a raw selection (option ids) into the canonical
// denormalized Answer for the question. A single selection becomes that
// option's label. Multiple selections become the labels joined by ", " in
// the question's option order, regardless of the order they were picked:
// the same set of ids always yields the same answer text.
func NormalizeAnswer(q *quizgen.Question, selection []string) (quizgen.Answer, error) {
	picked := make(map[string]bool, len(selection))
	for _, id := range selection {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := q.OptionByID(id); !ok {
			return quizgen.Answer{}, &ValidationError{
				Field:   "selection",
				Message: fmt.Sprintf("unknown option %q for this question", id),
			}
		}
		picked[id] = true
	}

	if len(picked) == 0 {
		return quizgen.Answer{}, &ValidationError{
			Field:   "selection",
			Message: "select at least one option",
		}
	}

	// Collect labels in the question's fixed option order, not the
	// selection order.
	labels := make([]string, 0, len(picked))
	for _, o := range q.Options {
		if picked[o.ID] {
			labels = append(labels, o.Label)
		}
	}

	return quizgen.Answer{
		Question: q.Text,
		Answer:   strings.Join(labels, answerSeparator),
	}, nil
}
