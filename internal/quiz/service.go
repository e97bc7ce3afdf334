package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/yashir5686/disha-portal/internal/quizgen"
	"github.com/yashir5686/disha-portal/internal/recommend"
	"github.com/yashir5686/disha-portal/internal/store"
)

// Service is the presentation-facing quiz API. It orchestrates the session
// state machine over the question generator, the recommendation assembler,
// and the profile store, all injected with no ambient state.
//
// Every externally-caused failure surfaces as a typed error with no silent
// retries; the caller decides whether to retry the same step. No partial
// question is ever exposed: either a fully valid Question is attached to
// the returned session or the previous session is returned with an error.
type Service struct {
	generator quizgen.Generator
	assembler recommend.Assembler
	profiles  store.ProfileRepo

	// recCache is a read-through cache of the last recommendation per
	// user, invalidated by Restart. Writes to the backing store are
	// last-writer-wins; only the owning user ever writes their entry.
	mu       sync.Mutex
	recCache map[string]*recommend.Recommendation
}

// NewService creates a Service with explicit dependencies.
func NewService(gen quizgen.Generator, asm recommend.Assembler, profiles store.ProfileRepo) *Service {
	return &Service{
		generator: gen,
		assembler: asm,
		profiles:  profiles,
		recCache:  make(map[string]*recommend.Recommendation),
	}
}

// Start validates the grade/stream combination and opens a session,
// immediately fetching question #1.
func (s *Service) Start(ctx context.Context, grade quizgen.Grade, stream string) (Session, error) {
	if !grade.Valid() {
		return Session{}, &ValidationError{
			Field:   "grade",
			Message: fmt.Sprintf("grade must be %q or %q", quizgen.Grade10, quizgen.Grade12),
		}
	}
	if grade == quizgen.Grade12 && strings.TrimSpace(stream) == "" {
		return Session{}, &ValidationError{
			Field:   "stream",
			Message: "12th-grade students must select their stream",
		}
	}

	sess := NewSession(grade, strings.TrimSpace(stream))
	return s.NextQuestion(ctx, sess)
}

// NextQuestion ensures the session has its next question attached, reusing
// the cached question when one exists for the index (the goBack path) and
// generating otherwise. On GenerationError the input session is returned
// unchanged so the caller can retry the same step.
func (s *Service) NextQuestion(ctx context.Context, sess Session) (Session, error) {
	if sess.Stage != StageStart && sess.Stage != StageInProgress {
		return sess, &ValidationError{
			Field:   "session",
			Message: "no further questions in this stage",
		}
	}

	index := sess.ExpectedIndex()
	if index > sess.TrackLength() {
		return sess, &ValidationError{
			Field:   "session",
			Message: "all questions have been answered",
		}
	}

	if sess.cachedQuestion(index) != nil {
		next := sess
		next.Stage = StageInProgress
		return next, nil
	}

	fetchedIndex, q, err := s.FetchQuestion(ctx, sess)
	if err != nil {
		return sess, err
	}
	return s.ApplyQuestion(sess, fetchedIndex, q)
}

// FetchQuestion issues a generation request for the session's next index
// and returns the index it was tagged with. Callers that fetch
// asynchronously must pass that index back to ApplyQuestion so late
// results can be detected.
func (s *Service) FetchQuestion(ctx context.Context, sess Session) (int, *quizgen.Question, error) {
	index := sess.ExpectedIndex()

	spec, err := quizgen.NextSpec(sess.Grade, index)
	if err != nil {
		return index, nil, fmt.Errorf("question spec: %w", err)
	}

	q, err := s.generator.Generate(ctx, quizgen.GenerateInput{
		Grade:   sess.Grade,
		Stream:  sess.Stream,
		Spec:    spec,
		History: sess.History,
	})
	if err != nil {
		return index, nil, &GenerationError{Step: "question", Err: err}
	}

	return index, q, nil
}

// ApplyQuestion attaches a fetched question to the session. A result whose
// index no longer matches the session's expected position is discarded:
// the session is returned unchanged and the StaleResponseError is logged
// for diagnostics, never shown to the user.
func (s *Service) ApplyQuestion(sess Session, index int, q *quizgen.Question) (Session, error) {
	next, err := sess.AcceptQuestion(index, q)
	if err != nil {
		var stale *StaleResponseError
		if errors.As(err, &stale) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", stale)
		}
		return sess, err
	}
	return next, nil
}

// Answer normalizes the selection against the current question, appends it
// to history, and either advances to the next question or, when the track
// is complete, moves to profile collection.
func (s *Service) Answer(ctx context.Context, sess Session, selection []string) (Session, error) {
	q := sess.CurrentQuestion()
	if q == nil {
		return sess, &ValidationError{
			Field:   "session",
			Message: "no question is awaiting an answer",
		}
	}

	ans, err := NormalizeAnswer(q, selection)
	if err != nil {
		return sess, err
	}

	next := sess.appendAnswer(ans)
	if len(next.History) >= next.TrackLength() {
		next.Stage = StageCollectingProfile
		return next, nil
	}

	return s.NextQuestion(ctx, next)
}

// GoBack steps to the previous position, re-presenting the cached question
// without regenerating. Profile text typed before going back is the
// presentation layer's to keep or discard.
func (s *Service) GoBack(sess Session) Session {
	return sess.Back()
}

// SubmitProfile validates the free-text profile, assembles the
// recommendation with a single generation call, persists it for the user,
// and completes the session. On any failure the session stays at
// CollectingProfile with history intact.
func (s *Service) SubmitProfile(ctx context.Context, sess Session, userID, profileText string) (Session, *recommend.Recommendation, error) {
	if sess.Stage != StageCollectingProfile {
		return sess, nil, &ValidationError{
			Field:   "session",
			Message: "finish the quiz before submitting profile information",
		}
	}

	profileText = strings.TrimSpace(profileText)
	if len(profileText) < recommend.MinProfileLength {
		return sess, nil, &ValidationError{
			Field:   "profile",
			Message: fmt.Sprintf("tell us a bit more about yourself (at least %d characters)", recommend.MinProfileLength),
		}
	}

	rec, err := s.assembler.Assemble(ctx, recommend.Input{
		History:            sess.History,
		ProfileInformation: profileText,
		Grade:              sess.Grade,
		Stream:             sess.Stream,
	})
	if err != nil {
		return sess, nil, &GenerationError{Step: "recommendation", Err: err}
	}

	if err := s.saveRecommendation(ctx, userID, sess, rec); err != nil {
		return sess, nil, err
	}

	next := sess
	next.Stage = StageComplete
	return next, rec, nil
}

// Restart discards any persisted recommendation for the user and returns a
// fresh Start-state session. The read-through cache entry is invalidated
// with it.
func (s *Service) Restart(ctx context.Context, userID string) (Session, error) {
	if err := s.profiles.ClearRecommendation(ctx, userID); err != nil {
		return Session{}, fmt.Errorf("clear recommendation: %w", err)
	}

	s.mu.Lock()
	delete(s.recCache, userID)
	s.mu.Unlock()

	return Session{Stage: StageStart}, nil
}

// LastRecommendation returns the user's stored recommendation, or nil if
// none exists. Reads go through the in-memory cache first, then the
// profile store.
func (s *Service) LastRecommendation(ctx context.Context, userID string) (*recommend.Recommendation, error) {
	s.mu.Lock()
	if rec, ok := s.recCache[userID]; ok {
		s.mu.Unlock()
		return rec, nil
	}
	s.mu.Unlock()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(profile.Recommendation) == 0 {
		return nil, nil
	}

	var rec recommend.Recommendation
	if err := json.Unmarshal(profile.Recommendation, &rec); err != nil {
		return nil, fmt.Errorf("decode stored recommendation: %w", err)
	}

	s.mu.Lock()
	s.recCache[userID] = &rec
	s.mu.Unlock()

	return &rec, nil
}

// saveRecommendation persists the report plus the grade/stream the quiz
// ran with, merging into whatever profile fields already exist.
func (s *Service) saveRecommendation(ctx context.Context, userID string, sess Session, rec *recommend.Recommendation) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}

	grade := string(sess.Grade)
	patch := store.ProfilePatch{
		Grade:          &grade,
		Recommendation: raw,
	}
	if sess.Stream != "" {
		stream := sess.Stream
		patch.Stream = &stream
	}

	if err := s.profiles.Save(ctx, userID, patch); err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}

	s.mu.Lock()
	s.recCache[userID] = rec
	s.mu.Unlock()

	return nil
}
