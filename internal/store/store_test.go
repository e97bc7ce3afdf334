package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ProfileRepo().Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestProfileSaveMergesFields(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	name := "Asha"
	grade := "10th"
	if err := repo.Save(ctx, "u1", ProfilePatch{Name: &name, Grade: &grade}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	// A later patch touching only stream must keep name and grade.
	stream := "Commerce"
	if err := repo.Save(ctx, "u1", ProfilePatch{Stream: &stream}); err != nil {
		t.Fatalf("patch save: %v", err)
	}

	p, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Asha" {
		t.Errorf("name = %q, want Asha", p.Name)
	}
	if p.Grade != "10th" {
		t.Errorf("grade = %q, want 10th", p.Grade)
	}
	if p.Stream != "Commerce" {
		t.Errorf("stream = %q, want Commerce", p.Stream)
	}
}

func TestProfileRecommendationRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	rec := json.RawMessage(`{"recommendationTitle":"Your Path","recommendation":"Arts","interestAnalysis":[{"area":"Artistic","score":88}]}`)
	if err := repo.Save(ctx, "u2", ProfilePatch{Recommendation: rec}); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := repo.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Recommendation == nil {
		t.Fatal("expected stored recommendation")
	}

	var decoded map[string]any
	if err := json.Unmarshal(p.Recommendation, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["recommendation"] != "Arts" {
		t.Errorf("recommendation = %v, want Arts", decoded["recommendation"])
	}
}

func TestProfileClearRecommendation(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	grade := "12th"
	rec := json.RawMessage(`{"recommendation":"Science"}`)
	if err := repo.Save(ctx, "u3", ProfilePatch{Grade: &grade, Recommendation: rec}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.ClearRecommendation(ctx, "u3"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	p, err := repo.Get(ctx, "u3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Recommendation != nil {
		t.Error("expected recommendation cleared")
	}
	if p.Grade != "12th" {
		t.Errorf("grade must survive the clear, got %q", p.Grade)
	}

	// Clearing a user with no profile is a no-op, not an error.
	if err := repo.ClearRecommendation(ctx, "ghost"); err != nil {
		t.Fatalf("clear missing: %v", err)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      "question-gen",
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    int64(200 + i),
			Success:      true,
			RequestBody:  `{"messages":[]}`,
			ResponseBody: `{"question":"q"}`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Purpose != "question-gen" {
		t.Errorf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestEventUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed := []LLMRequestEventData{
		{Provider: "mock", Model: "m", Purpose: "question-gen", InputTokens: 100, OutputTokens: 40, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m", Purpose: "question-gen", InputTokens: 120, OutputTokens: 60, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m", Purpose: "recommendation", InputTokens: 900, OutputTokens: 700, LatencyMs: 2000, Success: true},
	}
	for i, d := range seed {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}

	byPurpose := make(map[string]UsageStat, len(stats))
	for _, st := range stats {
		byPurpose[st.Purpose] = st
	}

	qg := byPurpose["question-gen"]
	if qg.Calls != 2 || qg.InputTokens != 220 || qg.OutputTokens != 100 {
		t.Errorf("question-gen stats: %+v", qg)
	}
	if qg.AvgLatencyMs != 200 {
		t.Errorf("question-gen avg latency = %d, want 200", qg.AvgLatencyMs)
	}

	rc := byPurpose["recommendation"]
	if rc.Calls != 1 || rc.InputTokens != 900 {
		t.Errorf("recommendation stats: %+v", rc)
	}
}
