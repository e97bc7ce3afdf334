package recommend

import "github.com/yashir5686/disha-portal/internal/llm"

// RecommendationSchema describes the full report shape for the single
// assembly call.
var RecommendationSchema = &llm.Schema{
	Name:        "career-recommendation",
	Description: "A personalized stream/career recommendation report for an Indian student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendationTitle": map[string]any{
				"type":        "string",
				"description": "Short heading, e.g. 'Recommended Stream for You'",
			},
			"recommendation": map[string]any{
				"type":        "string",
				"description": "The primary recommended stream (10th) or degree/career field (12th)",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "Narrative summary explaining how the answers and profile led here",
			},
			"interestAnalysis": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area": map[string]any{
							"type":        "string",
							"description": "Interest area name, e.g. 'Investigative'",
						},
						"score": map[string]any{
							"type":        "number",
							"minimum":     0,
							"maximum":     100,
							"description": "Score for this area, 0 to 100",
						},
						"summary": map[string]any{
							"type":        "string",
							"description": "What this interest area means for the student",
						},
					},
					"required":             []any{"area", "score", "summary"},
					"additionalProperties": false,
				},
				"description": "3-4 core interest areas (RIASEC-style) with scores",
			},
			"degreeOptions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"description": map[string]any{
							"type": "string",
						},
						"careerOptions": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"privateJobs": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"govtJobs": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"higherEducation": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"entrepreneurship": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
							},
							"required":             []any{"privateJobs", "govtJobs", "higherEducation", "entrepreneurship"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"name", "description", "careerOptions"},
					"additionalProperties": false,
				},
				"description": "2-3 degree/course options aligned with the recommendation",
			},
			"collegeSuggestions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"location": map[string]any{
							"type":        "string",
							"description": "City and state",
						},
						"entranceExam": map[string]any{
							"type":        "string",
							"description": "Primary entrance exam, e.g. 'JEE Main', 'NEET', 'CUET'",
						},
					},
					"required":             []any{"name", "location", "entranceExam"},
					"additionalProperties": false,
				},
				"description": "3-4 government colleges suitable for the recommended path",
			},
			"alternativeRecommendations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-3 alternative career paths or streams",
			},
		},
		"required": []any{
			"recommendationTitle", "recommendation", "reasoning",
			"interestAnalysis", "degreeOptions", "collegeSuggestions",
			"alternativeRecommendations",
		},
		"additionalProperties": false,
	},
}
