package quizgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yashir5686/disha-portal/internal/llm"
)

func choiceJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "Your school science fair needs a project. What do you pick?",
		"options": [
			"Build a working model of a water filter",
			"Survey classmates and chart the results",
			"Write and present the project report",
			"Organize the team and the stall"
		]
	}`)
}

func likertJSON() json.RawMessage {
	return json.RawMessage(`{"statement": "I enjoy figuring out why a gadget stopped working."}`)
}

func choiceInput() GenerateInput {
	return GenerateInput{
		Grade: Grade10,
		Spec: Spec{
			Kind:            KindForcedChoice,
			OptionCount:     ChoiceOptionCount,
			StemWordLimit:   StemWordLimit,
			OptionWordLimit: OptionWordLimit,
		},
	}
}

func likertInput() GenerateInput {
	return GenerateInput{
		Grade: Grade10,
		Spec: Spec{
			Kind:            KindLikert,
			StemWordLimit:   StemWordLimit,
			OptionWordLimit: OptionWordLimit,
		},
	}
}

func TestGenerate_ForcedChoice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: choiceJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(t.Context(), choiceInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Kind != KindForcedChoice {
		t.Errorf("expected kind %q, got %q", KindForcedChoice, q.Kind)
	}
	if q.Text == "" {
		t.Error("expected non-empty question text")
	}
	if len(q.Options) != ChoiceOptionCount {
		t.Fatalf("expected %d options, got %d", ChoiceOptionCount, len(q.Options))
	}
	if q.ID == "" {
		t.Error("expected a generated question id")
	}

	seen := make(map[string]bool)
	for _, o := range q.Options {
		if o.ID == "" {
			t.Error("expected a generated option id")
		}
		if seen[o.ID] {
			t.Errorf("duplicate option id %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestGenerate_LikertAttachesFixedScale(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: likertJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(t.Context(), likertInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Kind != KindLikert {
		t.Errorf("expected kind %q, got %q", KindLikert, q.Kind)
	}
	if len(q.Options) != likertScaleSize {
		t.Fatalf("expected %d scale options, got %d", likertScaleSize, len(q.Options))
	}
	for i, want := range likertLabels {
		if q.Options[i].Label != want {
			t.Errorf("option %d: expected %q, got %q", i, want, q.Options[i].Label)
		}
	}
}

func TestGenerate_LikertScaleIDsAreFreshPerQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: likertJSON()},
		llm.MockResponse{Content: likertJSON()},
	)
	gen := New(mock, DefaultConfig())

	q1, err := gen.Generate(t.Context(), likertInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q2, err := gen.Generate(t.Context(), likertInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range q1.Options {
		if q1.Options[i].ID == q2.Options[i].ID {
			t.Errorf("scale option %d reused id %q across questions", i, q1.Options[i].ID)
		}
	}
}

func TestGenerate_SchemaSelection(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: choiceJSON()},
		llm.MockResponse{Content: likertJSON()},
	)
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(t.Context(), choiceInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gen.Generate(t.Context(), likertInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := mock.Calls[0].Schema.Name; got != ChoiceQuestionSchema.Name {
		t.Errorf("expected choice schema, got %q", got)
	}
	if got := mock.Calls[1].Schema.Name; got != LikertQuestionSchema.Name {
		t.Errorf("expected likert schema, got %q", got)
	}
}

func TestGenerate_HistoryThreadedIntoPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: choiceJSON()})
	gen := New(mock, DefaultConfig())

	input := choiceInput()
	input.History = []Answer{
		{Question: "Weekend free time: what do you reach for?", Answer: "Fixing my cycle"},
	}

	if _, err := gen.Generate(t.Context(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Fixing my cycle") {
		t.Error("expected prior answer in the prompt")
	}
	if !strings.Contains(prompt, "Question 2 of 14") {
		t.Errorf("expected position marker in the prompt, got:\n%s", prompt)
	}
}

func TestGenerate_WrongOptionCountFailsValidation(t *testing.T) {
	short := json.RawMessage(`{
		"question": "Pick one.",
		"options": ["Only", "Three", "Here"]
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: short})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), choiceInput())
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
}

func TestGenerate_ProviderErrorPassthrough(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), choiceInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped ErrProviderUnavailable, got: %T", err)
	}
}
