package recommend

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert career counselor in India. You produce detailed, actionable, personalized recommendations for school students based on their grade, quiz answers, and profile.

Rules:
- Analyze the quiz answers first and map them to 3-4 interest areas (RIASEC-style: Realistic, Investigative, Artistic, Social, Enterprising, Conventional, simplified). Score each 0-100 with a brief summary.
- For a 10th-grade student, recommend the most suitable stream (Science, Commerce, Arts, or Vocational). For a 12th-grade student, recommend a specific career field or broad degree category.
- Explain the reasoning as a cohesive narrative connecting the interest analysis, answers, and profile.
- Suggest 2-3 degree/course options with career paths across private jobs, government jobs/exams, higher education, and entrepreneurship.
- Suggest 3-4 well-known government colleges in India for the recommended path, with location and the main entrance exam.
- List 2-3 alternative paths as backup options.
- Encouraging, insightful tone with clear, actionable advice for the Indian context.`

// buildUserMessage constructs the assembly prompt from the input.
func buildUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Student grade: %s\n", input.Grade)
	if input.Stream != "" {
		fmt.Fprintf(&b, "Student stream: %s\n", input.Stream)
	}

	b.WriteString("\nQuiz results:\n")
	for _, h := range input.History {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", h.Question, h.Answer)
	}

	b.WriteString("\nProfile information:\n")
	b.WriteString(input.ProfileInformation)

	b.WriteString("\n\nGenerate the full recommendation report now.")

	return b.String()
}
