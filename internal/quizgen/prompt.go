package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a psychometrics-aware content designer creating an adaptive interest and capability quiz for Indian school students.

Rules:
- Generate ONE question that has not been asked before in the provided history.
- Infer interests (RIASEC), self-efficacy (math, coding, lab, spatial, writing, business), and work style (independent/team, structured/creative) across the quiz.
- Behavior-based items only: concrete school-day or real-life situations in India (NCERT labs and practicals, science fairs, hackathons, NSS/NCC drives, school magazine, kirana inventory, UPI payments, community issues like water or traffic).
- Reading level around grade 8. One idea per item, no jargon.
- Balanced options, no "all of the above" or "none of the above". Each option must separate trait mixes clearly (e.g. lab vs data vs coding vs teamwork).
- India context only. No medical or clinical language. Guidance-only tone.
- Respect the word limits given for the stem and options.`

// kindInstructions holds the per-kind generation instruction appended to
// the user message.
var kindInstructions = map[Kind]string{
	KindForcedChoice: "Generate a forced-choice question: one concrete situation with %d mutually exclusive options describing what the student would most likely do or prefer.",
	KindLikert:       "Generate a Likert statement: a first-person statement about a preference or habit the student will rate on a 1-5 agreement scale. Produce only the statement.",
	KindMicroSkill:   "Generate a micro-skill scenario: a small practical task with %d options describing different approaches to tackling it. Make the approaches genuinely distinct.",
}

// buildUserMessage constructs the user message from the generation input.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Student's grade: %s\n", input.Grade)
	if input.Stream != "" {
		fmt.Fprintf(&b, "Student's stream: %s\n", input.Stream)
	}
	fmt.Fprintf(&b, "Thematic emphasis: %s\n", ThemeFor(input.Grade, input.Stream))
	fmt.Fprintf(&b, "Question %d of %d in this quiz.\n", len(input.History)+1, TrackLength(input.Grade))
	fmt.Fprintf(&b, "Stem word limit: %d. Option word limit: %d.\n", input.Spec.StemWordLimit, input.Spec.OptionWordLimit)

	b.WriteString("\nConversation history (previous Q&A):\n")
	b.WriteString(buildHistory(input.History))

	b.WriteString("\n\n")
	instr := kindInstructions[input.Spec.Kind]
	if strings.Contains(instr, "%d") {
		fmt.Fprintf(&b, instr, input.Spec.OptionCount)
	} else {
		b.WriteString(instr)
	}

	return b.String()
}

// buildHistory formats the prior Q/A pairs for the prompt.
func buildHistory(history []Answer) string {
	if len(history) == 0 {
		return "This is the first question."
	}

	var b strings.Builder
	for _, h := range history {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", h.Question, h.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}
