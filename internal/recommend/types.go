package recommend

import "github.com/yashir5686/disha-portal/internal/quizgen"

// Recommendation is the structured career/stream report produced once per
// completed quiz session. JSON tags match the generation schema so the
// value round-trips through the profile store unchanged.
type Recommendation struct {
	// Title is a short heading for the report, e.g. "Recommended Stream
	// for You".
	Title string `json:"recommendationTitle"`

	// Recommendation is the primary recommended stream (grade 10) or
	// degree/career field (grade 12).
	Recommendation string `json:"recommendation"`

	// Reasoning is a narrative summary connecting quiz answers and
	// profile information to the conclusion.
	Reasoning string `json:"reasoning"`

	// InterestAnalysis maps the student's answers to 3-4 core interest
	// areas (RIASEC-style labels) with scores.
	InterestAnalysis []InterestArea `json:"interestAnalysis"`

	// DegreeOptions lists 2-3 degree/course options aligned with the
	// recommendation.
	DegreeOptions []DegreeInfo `json:"degreeOptions"`

	// CollegeSuggestions lists 3-4 government colleges suitable for the
	// recommended path.
	CollegeSuggestions []CollegeSuggestion `json:"collegeSuggestions"`

	// AlternativeRecommendations lists 2-3 backup paths.
	AlternativeRecommendations []string `json:"alternativeRecommendations"`
}

// InterestArea is one scored interest bucket. Score is 0-100; values
// outside that range are a generator-conformance failure, never clamped.
type InterestArea struct {
	Area    string  `json:"area"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// CareerOptions groups career paths a degree opens up.
type CareerOptions struct {
	PrivateJobs      []string `json:"privateJobs"`
	GovtJobs         []string `json:"govtJobs"`
	HigherEducation  []string `json:"higherEducation"`
	Entrepreneurship []string `json:"entrepreneurship"`
}

// DegreeInfo describes one degree/course option.
type DegreeInfo struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	CareerOptions CareerOptions `json:"careerOptions"`
}

// CollegeSuggestion is one suggested college.
type CollegeSuggestion struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	EntranceExam string `json:"entranceExam"`
}

// Input holds everything the assembler needs for the single generation
// call.
type Input struct {
	// History is the full ordered (question, answer) list from the quiz.
	History []quizgen.Answer

	// ProfileInformation is the free-text learner profile. Callers must
	// enforce the MinProfileLength precondition before invoking Assemble;
	// the assembler does not re-validate.
	ProfileInformation string

	Grade  quizgen.Grade
	Stream string
}

// MinProfileLength is the minimum character count for ProfileInformation.
// Enforced by callers, documented here as the contract.
const MinProfileLength = 30
