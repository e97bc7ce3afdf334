package quizgen

import "github.com/yashir5686/disha-portal/internal/llm"

// ChoiceQuestionSchema is the generation schema for forced-choice and
// micro-skill questions: a stem plus generated option labels.
var ChoiceQuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single adaptive career-interest quiz question with options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question stem shown to the student, at most 18 words",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 distinct option labels, each at most 14 words",
			},
		},
		"required":             []any{"question", "options"},
		"additionalProperties": false,
	},
}

// LikertQuestionSchema is the generation schema for Likert questions. Only
// the statement is generated; the 5-point agreement scale is fixed and
// attached locally.
var LikertQuestionSchema = &llm.Schema{
	Name:        "likert-statement",
	Description: "A single statement the student rates on a 1-5 agreement scale",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"statement": map[string]any{
				"type":        "string",
				"description": "The statement to rate, at most 18 words, first person",
			},
		},
		"required":             []any{"statement"},
		"additionalProperties": false,
	},
}
