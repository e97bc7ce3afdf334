package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackLength(t *testing.T) {
	assert.Equal(t, 14, TrackLength(Grade10))
	assert.Equal(t, 18, TrackLength(Grade12))
}

func TestKindCount(t *testing.T) {
	assert.Equal(t, 6, KindCount(Grade10, KindForcedChoice))
	assert.Equal(t, 8, KindCount(Grade10, KindLikert))
	assert.Equal(t, 0, KindCount(Grade10, KindMicroSkill))

	assert.Equal(t, 6, KindCount(Grade12, KindForcedChoice))
	assert.Equal(t, 8, KindCount(Grade12, KindLikert))
	assert.Equal(t, 4, KindCount(Grade12, KindMicroSkill))
}

func TestNextSpec_PhaseBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		grade    Grade
		index    int
		wantKind Kind
		wantOpts int
	}{
		{"grade10 first question", Grade10, 1, KindForcedChoice, ChoiceOptionCount},
		{"grade10 last forced-choice", Grade10, 6, KindForcedChoice, ChoiceOptionCount},
		{"grade10 first likert", Grade10, 7, KindLikert, 0},
		{"grade10 last question", Grade10, 14, KindLikert, 0},
		{"grade12 last likert", Grade12, 14, KindLikert, 0},
		{"grade12 first micro-skill", Grade12, 15, KindMicroSkill, ChoiceOptionCount},
		{"grade12 last question", Grade12, 18, KindMicroSkill, ChoiceOptionCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NextSpec(tt.grade, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, spec.Kind)
			assert.Equal(t, tt.wantOpts, spec.OptionCount)
			assert.Equal(t, StemWordLimit, spec.StemWordLimit)
			assert.Equal(t, OptionWordLimit, spec.OptionWordLimit)
		})
	}
}

func TestNextSpec_OutOfRange(t *testing.T) {
	_, err := NextSpec(Grade10, 0)
	assert.Error(t, err)

	_, err = NextSpec(Grade10, 15)
	assert.Error(t, err)

	_, err = NextSpec(Grade12, 19)
	assert.Error(t, err)

	_, err = NextSpec(Grade("9th"), 1)
	assert.Error(t, err)
}

func TestThemeFor_Grade10AlwaysBalanced(t *testing.T) {
	assert.Equal(t, balancedTheme, ThemeFor(Grade10, ""))
	// A stream value on a grade-10 session is ignored.
	assert.Equal(t, balancedTheme, ThemeFor(Grade10, "Commerce"))
}

func TestThemeFor_StreamCoverage(t *testing.T) {
	streams := []string{
		"Science (PCM)",
		"Science (PCB)",
		"Science (PCMB)",
		"Arts",
		"Commerce",
		"Vocational",
	}
	for _, s := range streams {
		theme := ThemeFor(Grade12, s)
		assert.NotEmpty(t, theme, "stream %q", s)
		assert.NotEqual(t, balancedTheme, theme, "stream %q should have its own theme", s)
	}
}

func TestThemeFor_UnknownStreamFallsBack(t *testing.T) {
	assert.Equal(t, balancedTheme, ThemeFor(Grade12, "Humanities with Maths"))
	assert.Equal(t, balancedTheme, ThemeFor(Grade12, ""))
}
