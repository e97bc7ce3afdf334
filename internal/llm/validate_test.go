package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A question with options",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
			},
			"required":             []string{"question", "options"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"question":"Which activity sounds best?","options":["Build a model","Write a report"]}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"question":"Which activity sounds best?"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"question":`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	// No schema means no validation; the content passes through untouched.
	if err := validateResponse(nil, json.RawMessage(`"plain text"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_CacheReuse(t *testing.T) {
	schema := testSchema()
	raw := json.RawMessage(`{"question":"q","options":["a","b"]}`)

	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}
	// Second call hits the compiled-schema cache; behavior must not change.
	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
}
