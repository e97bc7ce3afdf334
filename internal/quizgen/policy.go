package quizgen

import (
	"fmt"
	"strings"
)

// Question slot limits passed to the generator. These are content
// constraints for the prompt, not locally enforced.
const (
	StemWordLimit   = 18
	OptionWordLimit = 14

	// ChoiceOptionCount is the fixed option count for forced-choice and
	// micro-skill questions.
	ChoiceOptionCount = 4
)

// Spec describes the question slot at one index of a track: what kind of
// question to generate and the content constraints to pass along.
type Spec struct {
	Kind            Kind
	OptionCount     int // 0 for likert (fixed scale attached locally)
	StemWordLimit   int
	OptionWordLimit int
}

// phase is a contiguous run of same-kind questions within a track.
type phase struct {
	kind  Kind
	count int
}

// tracks defines the fixed per-grade question sequence. Grade 10 runs a
// shorter track; grade 12 adds a micro-skill phase.
var tracks = map[Grade][]phase{
	Grade10: {
		{KindForcedChoice, 6},
		{KindLikert, 8},
	},
	Grade12: {
		{KindForcedChoice, 6},
		{KindLikert, 8},
		{KindMicroSkill, 4},
	},
}

// TrackLength returns the total number of questions for the grade.
func TrackLength(g Grade) int {
	total := 0
	for _, p := range tracks[g] {
		total += p.count
	}
	return total
}

// KindCount returns how many questions of the given kind the grade's track
// contains.
func KindCount(g Grade, k Kind) int {
	for _, p := range tracks[g] {
		if p.kind == k {
			return p.count
		}
	}
	return 0
}

// NextSpec returns the slot specification for the 1-based question index,
// which equals len(history)+1. Indexes beyond the track length are the
// caller's bug; the session layer stops before that point.
func NextSpec(g Grade, index int) (Spec, error) {
	if !g.Valid() {
		return Spec{}, fmt.Errorf("unknown grade %q", g)
	}
	if index < 1 {
		return Spec{}, fmt.Errorf("question index %d out of range", index)
	}

	remaining := index
	for _, p := range tracks[g] {
		if remaining <= p.count {
			spec := Spec{
				Kind:            p.kind,
				StemWordLimit:   StemWordLimit,
				OptionWordLimit: OptionWordLimit,
			}
			if p.kind != KindLikert {
				spec.OptionCount = ChoiceOptionCount
			}
			return spec, nil
		}
		remaining -= p.count
	}

	return Spec{}, fmt.Errorf("question index %d out of range for grade %s (track length %d)", index, g, TrackLength(g))
}

// streamThemes maps normalized stream names to the thematic emphasis used
// to bias generated content.
var streamThemes = map[string]string{
	"science (pcm)":  "quantitative and mechanical scenarios: physics-math problem solving, circuits, coding for simulations, data analysis",
	"science (pcb)":  "biology and field scenarios: labs, human and plant systems, healthcare contexts, environmental monitoring",
	"science (pcmb)": "mixed science scenarios: labs, data analysis, healthcare and engineering contexts",
	"arts":           "research and writing scenarios: debates, design and media, history, civics, psychology, credible-source research",
	"commerce":       "operations and finance scenarios: accounts, budgeting, business cases, marketing, spreadsheets",
	"vocational":     "hands-on and safety scenarios: builds, repairs, tools, basic electronics, maker projects",
}

// balancedTheme is the fallback for unknown or combined streams, and for
// grade 10 where no stream has been chosen yet.
const balancedTheme = "a balanced mix of everyday school and community contexts"

// ThemeFor maps (grade, stream) to a thematic emphasis label. Every
// enumerated stream value is covered; anything else gets the balanced
// fallback.
func ThemeFor(g Grade, stream string) string {
	if g == Grade10 || stream == "" {
		return balancedTheme
	}
	if theme, ok := streamThemes[strings.ToLower(strings.TrimSpace(stream))]; ok {
		return theme
	}
	return balancedTheme
}
