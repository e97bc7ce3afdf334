package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/yashir5686/disha-portal/internal/llm"
)

// likertScaleSize is the fixed number of points on the agreement scale.
const likertScaleSize = 5

// likertLabels is the fixed 5-point agreement scale attached to every
// Likert question. It is never regenerated; only the ids are fresh.
var likertLabels = [likertScaleSize]string{
	"Strongly disagree",
	"Disagree",
	"Neutral",
	"Agree",
	"Strongly agree",
}

// LLMGenerator implements Generator using a content provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// choiceOutput is the raw generator response for choice-style questions.
type choiceOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// likertOutput is the raw generator response for Likert questions.
type likertOutput struct {
	Statement string `json:"statement"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	schema := ChoiceQuestionSchema
	if input.Spec.Kind == KindLikert {
		schema = LikertQuestionSchema
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	q, err := g.buildQuestion(input.Spec.Kind, resp.Content)
	if err != nil {
		return nil, err
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}

// buildQuestion parses the raw response and assigns fresh unique ids to
// the question and every option.
func (g *LLMGenerator) buildQuestion(kind Kind, content json.RawMessage) (*Question, error) {
	q := &Question{
		ID:   uuid.NewString(),
		Kind: kind,
	}

	if kind == KindLikert {
		var raw likertOutput
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse likert response: %w", err)
		}
		q.Text = raw.Statement
		q.Options = likertScale()
		return q, nil
	}

	var raw choiceOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}
	q.Text = raw.Question
	q.Options = make([]Option, len(raw.Options))
	for i, label := range raw.Options {
		q.Options[i] = Option{ID: uuid.NewString(), Label: label}
	}
	return q, nil
}

// likertScale returns the fixed agreement scale with fresh option ids.
func likertScale() []Option {
	out := make([]Option, likertScaleSize)
	for i, label := range likertLabels {
		out[i] = Option{ID: uuid.NewString(), Label: label}
	}
	return out
}
