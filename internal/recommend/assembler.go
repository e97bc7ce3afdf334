package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yashir5686/disha-portal/internal/llm"
)

// Assembler produces the final recommendation report from a completed
// quiz.
type Assembler interface {
	// Assemble makes exactly one generation call with the recommendation
	// schema and returns the structured report. No retries; conformance
	// failures (including out-of-range scores) are returned as errors.
	Assemble(ctx context.Context, input Input) (*Recommendation, error)
}

// ErrNonConforming indicates the generator returned a report violating an
// invariant the schema alone cannot express (or that slipped through a
// permissive backend). The value is rejected, never repaired.
type ErrNonConforming struct {
	Reason string
}

func (e *ErrNonConforming) Error() string {
	return fmt.Sprintf("non-conforming recommendation: %s", e.Reason)
}

// Config controls the LLMAssembler.
type Config struct {
	// MaxTokens is the token budget for the report. Reports are long.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended assembler defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.6,
	}
}

// LLMAssembler implements Assembler using a content provider.
type LLMAssembler struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMAssembler.
func New(provider llm.Provider, cfg Config) *LLMAssembler {
	return &LLMAssembler{provider: provider, config: cfg}
}

// Assemble produces the recommendation report.
//
// Precondition: len(input.ProfileInformation) >= MinProfileLength. Callers
// enforce this; Assemble does not re-validate.
func (a *LLMAssembler) Assemble(ctx context.Context, input Input) (*Recommendation, error) {
	ctx = llm.WithPurpose(ctx, "recommendation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      RecommendationSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	var rec Recommendation
	if err := json.Unmarshal(resp.Content, &rec); err != nil {
		return nil, fmt.Errorf("parse recommendation response: %w", err)
	}

	if err := checkConformance(&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// checkConformance verifies invariants downstream consumers rely on.
// Out-of-range scores are rejected, not clamped: a silently corrected
// score would mask a systematic prompt failure.
func checkConformance(rec *Recommendation) error {
	if rec.Recommendation == "" {
		return &ErrNonConforming{Reason: "empty recommendation field"}
	}
	for _, ia := range rec.InterestAnalysis {
		if ia.Score < 0 || ia.Score > 100 {
			return &ErrNonConforming{
				Reason: fmt.Sprintf("interest area %q score %.1f outside [0,100]", ia.Area, ia.Score),
			}
		}
	}
	return nil
}
