package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yashir5686/disha-portal/internal/store"
)

// memEventRepo collects appended events in memory.
type memEventRepo struct {
	events []store.LLMRequestEventData
}

func (m *memEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.events = append(m.events, data)
	return nil
}

func (m *memEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.UsageStat, error) {
	return nil, nil
}

func TestLogging_RecordsSuccessfulRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"question":"q"}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 40, TotalTokens: 160},
	})
	repo := &memEventRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "question-gen")
	req := Request{
		System:   "counselor system prompt",
		Messages: []Message{{Role: RoleUser, Content: "Student's grade: 10th"}},
	}

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success {
		t.Error("expected success event")
	}
	if e.Purpose != "question-gen" {
		t.Errorf("expected purpose from context, got %q", e.Purpose)
	}
	if e.InputTokens != 120 || e.OutputTokens != 40 {
		t.Errorf("unexpected token counts: %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "Student's grade: 10th") {
		t.Error("expected request body captured")
	}
	if e.ResponseBody != `{"question":"q"}` {
		t.Errorf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Err: &ErrProviderUnavailable{Err: errors.New("down")},
	})
	repo := &memEventRepo{}
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Success {
		t.Error("expected failure event")
	}
	if e.ErrorMessage == "" {
		t.Error("expected error message recorded")
	}
	if e.Purpose != "unknown" {
		t.Errorf("expected default purpose, got %q", e.Purpose)
	}
}
