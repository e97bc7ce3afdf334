package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/yashir5686/disha-portal/internal/quizgen"
	"github.com/yashir5686/disha-portal/internal/recommend"
	"github.com/yashir5686/disha-portal/internal/store"
)

// fakeGenerator produces deterministic questions matching the requested
// spec and records call counts. failOn triggers an error for that 1-based
// generation call, once.
type fakeGenerator struct {
	calls  int
	failOn int
}

func (g *fakeGenerator) Generate(_ context.Context, input quizgen.GenerateInput) (*quizgen.Question, error) {
	g.calls++
	if g.failOn > 0 && g.calls == g.failOn {
		g.failOn = 0
		return nil, errors.New("generator down")
	}

	n := len(input.History) + 1
	q := &quizgen.Question{
		ID:   fmt.Sprintf("gen-q%d", n),
		Text: fmt.Sprintf("Generated question %d", n),
		Kind: input.Spec.Kind,
	}

	count := input.Spec.OptionCount
	if input.Spec.Kind == quizgen.KindLikert {
		count = 5
	}
	for i := 0; i < count; i++ {
		q.Options = append(q.Options, quizgen.Option{
			ID:    fmt.Sprintf("gen-q%d-o%d", n, i),
			Label: fmt.Sprintf("Option %d for question %d", i+1, n),
		})
	}
	return q, nil
}

// fakeAssembler returns a canned recommendation or error and counts calls.
type fakeAssembler struct {
	calls int
	rec   *recommend.Recommendation
	err   error
}

func (a *fakeAssembler) Assemble(_ context.Context, _ recommend.Input) (*recommend.Recommendation, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.rec, nil
}

// fakeProfiles is an in-memory ProfileRepo.
type fakeProfiles struct {
	profiles map[string]*store.UserProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*store.UserProfile)}
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*store.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Save(_ context.Context, userID string, patch store.ProfilePatch) error {
	p, ok := f.profiles[userID]
	if !ok {
		p = &store.UserProfile{UserID: userID}
		f.profiles[userID] = p
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Grade != nil {
		p.Grade = *patch.Grade
	}
	if patch.Stream != nil {
		p.Stream = *patch.Stream
	}
	if patch.Recommendation != nil {
		p.Recommendation = patch.Recommendation
	}
	return nil
}

func (f *fakeProfiles) ClearRecommendation(_ context.Context, userID string) error {
	if p, ok := f.profiles[userID]; ok {
		p.Recommendation = nil
	}
	return nil
}

func testRecommendation() *recommend.Recommendation {
	return &recommend.Recommendation{
		Title:          "Recommended Stream for You",
		Recommendation: "Science (PCM)",
		Reasoning:      "Your answers show a strong pull toward building and analyzing.",
		InterestAnalysis: []recommend.InterestArea{
			{Area: "Investigative", Score: 82, Summary: "Enjoys figuring out how things work."},
			{Area: "Realistic", Score: 74, Summary: "Prefers hands-on tasks."},
		},
		AlternativeRecommendations: []string{"Commerce with Maths"},
	}
}

func newTestService(gen *fakeGenerator, asm *fakeAssembler, profiles store.ProfileRepo) *Service {
	if profiles == nil {
		profiles = newFakeProfiles()
	}
	return NewService(gen, asm, profiles)
}

func answerCurrent(t *testing.T, svc *Service, sess Session) Session {
	t.Helper()
	q := sess.CurrentQuestion()
	if q == nil {
		t.Fatalf("no current question at index %d", sess.ExpectedIndex())
	}
	next, err := svc.Answer(context.Background(), sess, []string{q.Options[0].ID})
	if err != nil {
		t.Fatalf("answer at index %d: %v", sess.ExpectedIndex(), err)
	}
	return next
}

func TestService_FullGrade10Run(t *testing.T) {
	gen := &fakeGenerator{}
	asm := &fakeAssembler{rec: testRecommendation()}
	profiles := newFakeProfiles()
	svc := newTestService(gen, asm, profiles)

	ctx := context.Background()
	sess, err := svc.Start(ctx, quizgen.Grade10, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Stage != StageInProgress {
		t.Fatalf("expected in-progress after start, got %q", sess.Stage)
	}

	for sess.Stage == StageInProgress {
		sess = answerCurrent(t, svc, sess)
	}

	if sess.Stage != StageCollectingProfile {
		t.Fatalf("expected collecting-profile, got %q", sess.Stage)
	}
	if len(sess.History) != 14 {
		t.Fatalf("expected 14 answers, got %d", len(sess.History))
	}
	if gen.calls != 14 {
		t.Errorf("expected 14 generation calls, got %d", gen.calls)
	}

	final, rec, err := svc.SubmitProfile(ctx, sess, "student-1", "I love robotics, fixing cycles, and maths puzzles.")
	if err != nil {
		t.Fatalf("submit profile: %v", err)
	}
	if final.Stage != StageComplete {
		t.Errorf("expected complete, got %q", final.Stage)
	}
	if rec == nil || rec.Recommendation != "Science (PCM)" {
		t.Errorf("unexpected recommendation: %+v", rec)
	}
	if asm.calls != 1 {
		t.Errorf("expected exactly one assembly call, got %d", asm.calls)
	}

	saved, err := profiles.Get(ctx, "student-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if saved.Grade != string(quizgen.Grade10) {
		t.Errorf("expected saved grade, got %q", saved.Grade)
	}
	if saved.Recommendation == nil {
		t.Error("expected persisted recommendation")
	}
}

func TestService_Grade12RequiresStream(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, nil)

	_, err := svc.Start(context.Background(), quizgen.Grade12, "  ")
	if err == nil {
		t.Fatal("expected error for missing stream")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	if verr.Field != "stream" {
		t.Errorf("expected stream field, got %q", verr.Field)
	}
}

func TestService_InvalidGrade(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, nil)

	_, err := svc.Start(context.Background(), quizgen.Grade("9th"), "")
	if err == nil {
		t.Fatal("expected error for invalid grade")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
}

func TestService_GenerationFailureKeepsAnswer(t *testing.T) {
	// Call 1 fetches question 1; call 2 (triggered by the first answer)
	// fails.
	gen := &fakeGenerator{failOn: 2}
	svc := newTestService(gen, &fakeAssembler{}, nil)

	ctx := context.Background()
	sess, err := svc.Start(ctx, quizgen.Grade10, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	q := sess.CurrentQuestion()
	next, err := svc.Answer(ctx, sess, []string{q.Options[0].ID})
	if err == nil {
		t.Fatal("expected generation error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got: %T", err)
	}
	if genErr.Step != "question" {
		t.Errorf("expected question step, got %q", genErr.Step)
	}
	// The accepted answer survives the failed fetch.
	if len(next.History) != 1 {
		t.Fatalf("expected answer kept, history length %d", len(next.History))
	}

	// Retrying the fetch succeeds and does not re-ask for the answer.
	retried, err := svc.NextQuestion(ctx, next)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if retried.ExpectedIndex() != 2 {
		t.Errorf("expected index 2 after retry, got %d", retried.ExpectedIndex())
	}
	if retried.CurrentQuestion() == nil {
		t.Error("expected question 2 attached after retry")
	}
}

func TestService_GoBackReusesCachedQuestion(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(gen, &fakeAssembler{}, nil)

	ctx := context.Background()
	sess, err := svc.Start(ctx, quizgen.Grade10, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	sess = answerCurrent(t, svc, sess)
	firstAnswer := sess.History[0]
	callsAfterTwo := gen.calls

	back := svc.GoBack(sess)
	if back.ExpectedIndex() != 1 {
		t.Fatalf("expected back at index 1, got %d", back.ExpectedIndex())
	}
	q := back.CurrentQuestion()
	if q == nil || q.ID != "gen-q1" {
		t.Fatalf("expected cached question 1, got %+v", q)
	}

	// Re-answering the same way reproduces the identical answer and both
	// questions come from cache: no new generation calls.
	again := answerCurrent(t, svc, back)
	if gen.calls != callsAfterTwo {
		t.Errorf("expected no new generation calls, had %d now %d", callsAfterTwo, gen.calls)
	}
	if again.History[0] != firstAnswer {
		t.Errorf("expected identical answer, got %+v vs %+v", again.History[0], firstAnswer)
	}
	if again.CurrentQuestion() == nil || again.CurrentQuestion().ID != "gen-q2" {
		t.Errorf("expected cached question 2 re-presented")
	}
}

func TestService_SubmitProfileTooShort(t *testing.T) {
	asm := &fakeAssembler{rec: testRecommendation()}
	svc := newTestService(&fakeGenerator{}, asm, nil)

	sess := NewSession(quizgen.Grade10, "")
	sess.Stage = StageCollectingProfile

	_, _, err := svc.SubmitProfile(context.Background(), sess, "u", "too short")
	if err == nil {
		t.Fatal("expected error for short profile")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	if asm.calls != 0 {
		t.Errorf("assembler must not run on invalid profile, got %d calls", asm.calls)
	}
}

func TestService_SubmitProfileWrongStage(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, nil)

	sess := NewSession(quizgen.Grade10, "")
	_, _, err := svc.SubmitProfile(context.Background(), sess, "u", "A perfectly long enough profile description.")
	if err == nil {
		t.Fatal("expected error outside collecting-profile stage")
	}
}

func TestService_AssemblyFailureKeepsStage(t *testing.T) {
	asm := &fakeAssembler{err: &recommend.ErrNonConforming{Reason: "score 150 outside range"}}
	svc := newTestService(&fakeGenerator{}, asm, nil)

	sess := NewSession(quizgen.Grade10, "")
	sess.Stage = StageCollectingProfile

	next, rec, err := svc.SubmitProfile(context.Background(), sess, "u", "A perfectly long enough profile description.")
	if err == nil {
		t.Fatal("expected generation error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got: %T", err)
	}
	if genErr.Step != "recommendation" {
		t.Errorf("expected recommendation step, got %q", genErr.Step)
	}
	if rec != nil {
		t.Error("expected no recommendation on failure")
	}
	if next.Stage != StageCollectingProfile {
		t.Errorf("expected stage unchanged, got %q", next.Stage)
	}
}

func TestService_RestartClearsRecommendation(t *testing.T) {
	asm := &fakeAssembler{rec: testRecommendation()}
	profiles := newFakeProfiles()
	svc := newTestService(&fakeGenerator{}, asm, profiles)

	ctx := context.Background()
	sess := NewSession(quizgen.Grade10, "")
	sess.Stage = StageCollectingProfile

	if _, _, err := svc.SubmitProfile(ctx, sess, "u", "A perfectly long enough profile description."); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rec, err := svc.LastRecommendation(ctx, "u")
	if err != nil || rec == nil {
		t.Fatalf("expected saved recommendation, got %v / %v", rec, err)
	}

	fresh, err := svc.Restart(ctx, "u")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if fresh.Stage != StageStart {
		t.Errorf("expected start stage, got %q", fresh.Stage)
	}

	rec, err = svc.LastRecommendation(ctx, "u")
	if err != nil {
		t.Fatalf("last recommendation: %v", err)
	}
	if rec != nil {
		t.Error("expected recommendation cleared after restart")
	}
}

func TestService_LastRecommendationReadsThroughStore(t *testing.T) {
	profiles := newFakeProfiles()
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, profiles)

	ctx := context.Background()

	// No profile at all.
	rec, err := svc.LastRecommendation(ctx, "nobody")
	if err != nil || rec != nil {
		t.Fatalf("expected nil/nil for unknown user, got %v / %v", rec, err)
	}

	// Stored recommendation with no warm cache.
	raw, _ := json.Marshal(testRecommendation())
	profiles.profiles["u"] = &store.UserProfile{UserID: "u", Recommendation: raw}

	rec, err = svc.LastRecommendation(ctx, "u")
	if err != nil {
		t.Fatalf("last recommendation: %v", err)
	}
	if rec == nil || rec.Title != "Recommended Stream for You" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}

	// Second read comes from cache and survives a store wipe.
	profiles.profiles["u"].Recommendation = nil
	rec, err = svc.LastRecommendation(ctx, "u")
	if err != nil || rec == nil {
		t.Fatalf("expected cached recommendation, got %v / %v", rec, err)
	}
}

func TestService_AnswerWithoutQuestion(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, nil)

	sess := NewSession(quizgen.Grade10, "")
	_, err := svc.Answer(context.Background(), sess, []string{"x"})
	if err == nil {
		t.Fatal("expected error with no current question")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
}

func TestService_ApplyQuestionDiscardsStale(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeAssembler{}, nil)

	sess := NewSession(quizgen.Grade10, "")
	stale := &quizgen.Question{ID: "late", Text: "Late arrival", Kind: quizgen.KindForcedChoice}

	next, err := svc.ApplyQuestion(sess, 4, stale)
	if err == nil {
		t.Fatal("expected stale response error")
	}
	var staleErr *StaleResponseError
	if !errors.As(err, &staleErr) {
		t.Fatalf("expected StaleResponseError, got: %T", err)
	}
	if next.CurrentQuestion() != nil {
		t.Error("stale question must not be attached")
	}
}
