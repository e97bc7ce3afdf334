package quizgen

import "testing"

func validChoiceQuestion() *Question {
	return &Question{
		ID:   "q1",
		Text: "A street vendor near school struggles with change. What would you do?",
		Kind: KindForcedChoice,
		Options: []Option{
			{ID: "a", Label: "Suggest a UPI QR code"},
			{ID: "b", Label: "Make a simple change chart"},
			{ID: "c", Label: "Track sales in a notebook"},
			{ID: "d", Label: "Ask friends to spread the word"},
		},
	}
}

func choiceSpec() GenerateInput {
	return GenerateInput{
		Grade: Grade10,
		Spec:  Spec{Kind: KindForcedChoice, OptionCount: 4},
	}
}

func TestStructural_ValidQuestionPasses(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validChoiceQuestion(), choiceSpec()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructural_EmptyText(t *testing.T) {
	q := validChoiceQuestion()
	q.Text = ""
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestStructural_KindMismatch(t *testing.T) {
	q := validChoiceQuestion()
	q.Kind = KindMicroSkill
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for kind mismatch")
	}
}

func TestStructural_WrongOptionCount(t *testing.T) {
	q := validChoiceQuestion()
	q.Options = q.Options[:3]
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for wrong option count")
	}
}

func TestStructural_DuplicateOptionID(t *testing.T) {
	q := validChoiceQuestion()
	q.Options[1].ID = q.Options[0].ID
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for duplicate option id")
	}
}

func TestStructural_DuplicateOptionLabel(t *testing.T) {
	q := validChoiceQuestion()
	q.Options[2].Label = q.Options[3].Label
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for duplicate option label")
	}
}

func TestStructural_EmptyOptionLabel(t *testing.T) {
	q := validChoiceQuestion()
	q.Options[0].Label = ""
	v := &StructuralValidator{}
	if err := v.Validate(q, choiceSpec()); err == nil {
		t.Fatal("expected error for empty option label")
	}
}

func TestStructural_LikertUsesScaleSize(t *testing.T) {
	q := &Question{
		ID:   "q1",
		Text: "I like organizing events for my class.",
		Kind: KindLikert,
		Options: []Option{
			{ID: "1", Label: "Strongly disagree"},
			{ID: "2", Label: "Disagree"},
			{ID: "3", Label: "Neutral"},
			{ID: "4", Label: "Agree"},
			{ID: "5", Label: "Strongly agree"},
		},
	}
	input := GenerateInput{Grade: Grade10, Spec: Spec{Kind: KindLikert}}

	v := &StructuralValidator{}
	if err := v.Validate(q, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q.Options = q.Options[:4]
	if err := v.Validate(q, input); err == nil {
		t.Fatal("expected error for short scale")
	}
}
