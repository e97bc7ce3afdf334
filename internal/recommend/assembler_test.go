package recommend

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yashir5686/disha-portal/internal/llm"
	"github.com/yashir5686/disha-portal/internal/quizgen"
)

func validReportJSON() json.RawMessage {
	return json.RawMessage(`{
		"recommendationTitle": "Recommended Stream for You",
		"recommendation": "Science (PCM)",
		"reasoning": "Your answers consistently favored building, measuring, and problem solving.",
		"interestAnalysis": [
			{"area": "Investigative", "score": 85, "summary": "Strong drive to understand how things work."},
			{"area": "Realistic", "score": 72, "summary": "Comfortable with tools and hands-on tasks."},
			{"area": "Conventional", "score": 40, "summary": "Less drawn to routine record keeping."}
		],
		"degreeOptions": [
			{
				"name": "B.Tech in Mechanical Engineering",
				"description": "Four-year engineering degree after 12th with PCM.",
				"careerOptions": {
					"privateJobs": ["Design engineer", "Plant engineer"],
					"govtJobs": ["ISRO technical cadre", "Railways (RRB JE)"],
					"higherEducation": ["M.Tech", "MS abroad"],
					"entrepreneurship": ["Fabrication workshop"]
				}
			}
		],
		"collegeSuggestions": [
			{"name": "IIT Bombay", "location": "Mumbai, Maharashtra", "entranceExam": "JEE Advanced"},
			{"name": "NIT Trichy", "location": "Tiruchirappalli, Tamil Nadu", "entranceExam": "JEE Main"},
			{"name": "COEP Technological University", "location": "Pune, Maharashtra", "entranceExam": "MHT CET"}
		],
		"alternativeRecommendations": ["Commerce with Maths", "B.Sc. in Physics"]
	}`)
}

func assembleInput() Input {
	return Input{
		History: []quizgen.Answer{
			{Question: "Your school science fair needs a project. What do you pick?", Answer: "Build a working model of a water filter"},
			{Question: "I enjoy figuring out why a gadget stopped working.", Answer: "Strongly agree"},
		},
		ProfileInformation: "I am from Pune, love physics practicals, and repair things at home.",
		Grade:              quizgen.Grade10,
	}
}

func TestAssemble_ValidReport(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReportJSON()})
	asm := New(mock, DefaultConfig())

	rec, err := asm.Assemble(t.Context(), assembleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Title != "Recommended Stream for You" {
		t.Errorf("unexpected title %q", rec.Title)
	}
	if rec.Recommendation != "Science (PCM)" {
		t.Errorf("unexpected recommendation %q", rec.Recommendation)
	}
	if len(rec.InterestAnalysis) != 3 {
		t.Errorf("expected 3 interest areas, got %d", len(rec.InterestAnalysis))
	}
	if len(rec.DegreeOptions) != 1 || rec.DegreeOptions[0].Name != "B.Tech in Mechanical Engineering" {
		t.Errorf("unexpected degree options: %+v", rec.DegreeOptions)
	}
	if len(rec.CollegeSuggestions) != 3 {
		t.Errorf("expected 3 colleges, got %d", len(rec.CollegeSuggestions))
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one generation call, got %d", mock.CallCount())
	}
}

func TestAssemble_PromptCarriesQuizAndProfile(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReportJSON()})
	asm := New(mock, DefaultConfig())

	if _, err := asm.Assemble(t.Context(), assembleInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Strongly agree") {
		t.Error("expected quiz answers in the prompt")
	}
	if !strings.Contains(prompt, "physics practicals") {
		t.Error("expected profile information in the prompt")
	}
	if mock.Calls[0].Schema.Name != RecommendationSchema.Name {
		t.Errorf("expected recommendation schema, got %q", mock.Calls[0].Schema.Name)
	}
}

func TestAssemble_ScoreOutOfRangeRejected(t *testing.T) {
	bad := json.RawMessage(`{
		"recommendationTitle": "t",
		"recommendation": "Science",
		"reasoning": "r",
		"interestAnalysis": [{"area": "Investigative", "score": 150, "summary": "s"}],
		"degreeOptions": [],
		"collegeSuggestions": [],
		"alternativeRecommendations": []
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	asm := New(mock, DefaultConfig())

	_, err := asm.Assemble(t.Context(), assembleInput())
	if err == nil {
		t.Fatal("expected non-conformance error")
	}
	var nc *ErrNonConforming
	if !errors.As(err, &nc) {
		t.Fatalf("expected ErrNonConforming, got: %T", err)
	}
	// One call, no retry: the bad value is rejected, never repaired.
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one call, got %d", mock.CallCount())
	}
}

func TestAssemble_EmptyRecommendationRejected(t *testing.T) {
	bad := json.RawMessage(`{
		"recommendationTitle": "t",
		"recommendation": "",
		"reasoning": "r",
		"interestAnalysis": [],
		"degreeOptions": [],
		"collegeSuggestions": [],
		"alternativeRecommendations": []
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	asm := New(mock, DefaultConfig())

	_, err := asm.Assemble(t.Context(), assembleInput())
	var nc *ErrNonConforming
	if !errors.As(err, &nc) {
		t.Fatalf("expected ErrNonConforming, got: %v", err)
	}
}

func TestAssemble_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	asm := New(mock, DefaultConfig())

	_, err := asm.Assemble(t.Context(), assembleInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected wrapped ErrProviderUnavailable, got: %T", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one call, got %d", mock.CallCount())
	}
}

func TestCheckConformance_BoundaryScores(t *testing.T) {
	rec := &Recommendation{
		Recommendation: "Arts",
		InterestAnalysis: []InterestArea{
			{Area: "Artistic", Score: 0},
			{Area: "Social", Score: 100},
		},
	}
	if err := checkConformance(rec); err != nil {
		t.Fatalf("boundary scores are valid, got: %v", err)
	}

	rec.InterestAnalysis[0].Score = -1
	if err := checkConformance(rec); err == nil {
		t.Fatal("expected error for negative score")
	}
}
