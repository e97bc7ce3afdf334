package quiz

import "github.com/yashir5686/disha-portal/internal/quizgen"

// Stage is the lifecycle phase of a quiz session.
type Stage string

const (
	StageStart             Stage = "start"
	StageInProgress        Stage = "in-progress"
	StageCollectingProfile Stage = "collecting-profile"
	StageComplete          Stage = "complete"
)

// Session is an immutable snapshot of one quiz run. Operations never
// mutate a Session in place; they return a new value, so a caller holding
// an old session sees a consistent history even across goBack/answer
// cycles. A session is owned by a single user and never shared across
// concurrent callers.
type Session struct {
	Grade  quizgen.Grade
	Stream string
	Stage  Stage

	// History is the ordered, append-only list of normalized answers.
	History []quizgen.Answer

	// questions caches every fetched question by 0-based index so going
	// back re-presents the same question without a new generation call.
	questions []*quizgen.Question
}

// NewSession creates a fresh session at StageStart.
func NewSession(grade quizgen.Grade, stream string) Session {
	return Session{
		Grade:  grade,
		Stream: stream,
		Stage:  StageStart,
	}
}

// ExpectedIndex is the 1-based index of the question the session needs
// next: len(history)+1.
func (s Session) ExpectedIndex() int {
	return len(s.History) + 1
}

// TrackLength is the total question count for this session's grade.
func (s Session) TrackLength() int {
	return quizgen.TrackLength(s.Grade)
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// session is not at a question (start, profile collection, complete, or
// the next question has not been fetched yet).
func (s Session) CurrentQuestion() *quizgen.Question {
	if s.Stage != StageInProgress {
		return nil
	}
	return s.cachedQuestion(s.ExpectedIndex())
}

// cachedQuestion returns the previously fetched question for the 1-based
// index, or nil.
func (s Session) cachedQuestion(index int) *quizgen.Question {
	if index < 1 || index > len(s.questions) {
		return nil
	}
	return s.questions[index-1]
}

// AcceptQuestion applies a fetched question to the session. Generation
// requests are tagged with the index they were issued for; a result whose
// index no longer matches the expected index is rejected with
// StaleResponseError and the session is returned unchanged.
func (s Session) AcceptQuestion(index int, q *quizgen.Question) (Session, error) {
	if index != s.ExpectedIndex() {
		return s, &StaleResponseError{Want: s.ExpectedIndex(), Got: index}
	}

	next := s
	next.Stage = StageInProgress
	if index <= len(s.questions) {
		// Re-accepting a cached slot keeps the original question; going
		// back must never swap the question under the user.
		return next, nil
	}

	qs := make([]*quizgen.Question, len(s.questions), index)
	copy(qs, s.questions)
	next.questions = append(qs, q)
	return next, nil
}

// appendAnswer returns a new session with the answer appended. History is
// copied, never mutated in place.
func (s Session) appendAnswer(ans quizgen.Answer) Session {
	next := s
	h := make([]quizgen.Answer, len(s.History), len(s.History)+1)
	copy(h, s.History)
	next.History = append(h, ans)
	return next
}

// Back steps the session one position backwards, re-presenting the cached
// question for that index. Fetched questions stay cached, so moving back
// and forward never consumes extra generation calls.
func (s Session) Back() Session {
	next := s
	switch s.Stage {
	case StageCollectingProfile:
		next.Stage = StageInProgress
		next.History = popAnswer(s.History)
	case StageInProgress:
		if len(s.History) == 0 {
			next.Stage = StageStart
			return next
		}
		next.History = popAnswer(s.History)
	}
	return next
}

// popAnswer returns a copy of history without its last element.
func popAnswer(history []quizgen.Answer) []quizgen.Answer {
	if len(history) == 0 {
		return history
	}
	h := make([]quizgen.Answer, len(history)-1)
	copy(h, history[:len(history)-1])
	return h
}
