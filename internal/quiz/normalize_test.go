package quiz

import (
	"errors"
	"testing"

	"github.com/yashir5686/disha-portal/internal/quizgen"
)

func multiSelectQuestion() *quizgen.Question {
	return &quizgen.Question{
		ID:   "q1",
		Text: "Which of these would you join at school?",
		Kind: quizgen.KindForcedChoice,
		Options: []quizgen.Option{
			{ID: "opt-a", Label: "Robotics club"},
			{ID: "opt-b", Label: "Debate society"},
			{ID: "opt-c", Label: "Art room"},
			{ID: "opt-d", Label: "Commerce quiz team"},
		},
	}
}

func TestNormalizeAnswer_SingleSelection(t *testing.T) {
	ans, err := NormalizeAnswer(multiSelectQuestion(), []string{"opt-b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Answer != "Debate society" {
		t.Errorf("expected label text, got %q", ans.Answer)
	}
	if ans.Question != "Which of these would you join at school?" {
		t.Errorf("expected question text, got %q", ans.Question)
	}
}

func TestNormalizeAnswer_MultiSelectionJoinsInOptionOrder(t *testing.T) {
	ans, err := NormalizeAnswer(multiSelectQuestion(), []string{"opt-c", "opt-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Answer != "Robotics club, Art room" {
		t.Errorf("expected option-order join, got %q", ans.Answer)
	}
}

func TestNormalizeAnswer_SelectionOrderIrrelevant(t *testing.T) {
	q := multiSelectQuestion()
	first, err := NormalizeAnswer(q, []string{"opt-a", "opt-d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NormalizeAnswer(q, []string{"opt-d", "opt-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Answer != second.Answer {
		t.Errorf("same set should normalize identically: %q vs %q", first.Answer, second.Answer)
	}
}

func TestNormalizeAnswer_DuplicatesCollapse(t *testing.T) {
	ans, err := NormalizeAnswer(multiSelectQuestion(), []string{"opt-b", "opt-b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Answer != "Debate society" {
		t.Errorf("expected duplicates collapsed, got %q", ans.Answer)
	}
}

func TestNormalizeAnswer_UnknownOption(t *testing.T) {
	_, err := NormalizeAnswer(multiSelectQuestion(), []string{"opt-z"})
	if err == nil {
		t.Fatal("expected error for unknown option")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
}

func TestNormalizeAnswer_EmptySelection(t *testing.T) {
	_, err := NormalizeAnswer(multiSelectQuestion(), nil)
	if err == nil {
		t.Fatal("expected error for empty selection")
	}
	_, err = NormalizeAnswer(multiSelectQuestion(), []string{"", "  "})
	if err == nil {
		t.Fatal("expected error for blank-only selection")
	}
}
