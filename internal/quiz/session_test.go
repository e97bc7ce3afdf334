package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yashir5686/disha-portal/internal/quizgen"
)

func testQuestion(n int) *quizgen.Question {
	return &quizgen.Question{
		ID:   fmt.Sprintf("q%d", n),
		Text: fmt.Sprintf("Question number %d", n),
		Kind: quizgen.KindForcedChoice,
		Options: []quizgen.Option{
			{ID: fmt.Sprintf("q%d-a", n), Label: "First"},
			{ID: fmt.Sprintf("q%d-b", n), Label: "Second"},
		},
	}
}

func TestSession_AcceptQuestionAdvancesStage(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	if sess.Stage != StageStart {
		t.Fatalf("expected start stage, got %q", sess.Stage)
	}

	next, err := sess.AcceptQuestion(1, testQuestion(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Stage != StageInProgress {
		t.Errorf("expected in-progress, got %q", next.Stage)
	}
	if q := next.CurrentQuestion(); q == nil || q.ID != "q1" {
		t.Errorf("expected q1 as current question, got %+v", q)
	}
}

func TestSession_StaleIndexDiscarded(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, err := sess.AcceptQuestion(1, testQuestion(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Session expects index 1; a result tagged for index 3 is late.
	next, err := sess.AcceptQuestion(3, testQuestion(3))
	if err == nil {
		t.Fatal("expected stale response error")
	}
	var stale *StaleResponseError
	if !errors.As(err, &stale) {
		t.Fatalf("expected StaleResponseError, got: %T", err)
	}
	if stale.Want != 1 || stale.Got != 3 {
		t.Errorf("expected want=1 got=3, have want=%d got=%d", stale.Want, stale.Got)
	}
	if q := next.CurrentQuestion(); q == nil || q.ID != "q1" {
		t.Errorf("session should be unchanged, current question: %+v", q)
	}
}

func TestSession_ReacceptKeepsCachedQuestion(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, _ = sess.AcceptQuestion(1, testQuestion(1))

	// Accepting a different question for an already-cached slot must not
	// swap the question under the user.
	next, err := sess.AcceptQuestion(1, testQuestion(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q := next.CurrentQuestion(); q == nil || q.ID != "q1" {
		t.Errorf("expected original q1 kept, got %+v", q)
	}
}

func TestSession_AppendAnswerDoesNotMutateOriginal(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, _ = sess.AcceptQuestion(1, testQuestion(1))

	withAnswer := sess.appendAnswer(quizgen.Answer{Question: "Question number 1", Answer: "First"})

	if len(sess.History) != 0 {
		t.Errorf("original session mutated: history length %d", len(sess.History))
	}
	if len(withAnswer.History) != 1 {
		t.Errorf("expected 1 answer, got %d", len(withAnswer.History))
	}
}

func TestSession_BackFromFirstQuestion(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, _ = sess.AcceptQuestion(1, testQuestion(1))

	back := sess.Back()
	if back.Stage != StageStart {
		t.Errorf("expected start stage, got %q", back.Stage)
	}
}

func TestSession_BackPopsLastAnswer(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, _ = sess.AcceptQuestion(1, testQuestion(1))
	sess = sess.appendAnswer(quizgen.Answer{Question: "Question number 1", Answer: "First"})
	sess, _ = sess.AcceptQuestion(2, testQuestion(2))

	back := sess.Back()
	if back.Stage != StageInProgress {
		t.Errorf("expected in-progress, got %q", back.Stage)
	}
	if len(back.History) != 0 {
		t.Errorf("expected popped history, got %d answers", len(back.History))
	}
	// The first question is re-presented from cache.
	if q := back.CurrentQuestion(); q == nil || q.ID != "q1" {
		t.Errorf("expected cached q1, got %+v", q)
	}
}

func TestSession_BackFromProfileCollection(t *testing.T) {
	sess := NewSession(quizgen.Grade10, "")
	sess, _ = sess.AcceptQuestion(1, testQuestion(1))
	sess = sess.appendAnswer(quizgen.Answer{Question: "Question number 1", Answer: "First"})
	sess.Stage = StageCollectingProfile

	back := sess.Back()
	if back.Stage != StageInProgress {
		t.Errorf("expected in-progress, got %q", back.Stage)
	}
	if len(back.History) != 0 {
		t.Errorf("expected last answer popped, got %d answers", len(back.History))
	}
}

func TestSession_ExpectedIndexTracksHistory(t *testing.T) {
	sess := NewSession(quizgen.Grade12, "Commerce")
	if sess.ExpectedIndex() != 1 {
		t.Fatalf("expected index 1, got %d", sess.ExpectedIndex())
	}
	if sess.TrackLength() != 18 {
		t.Fatalf("expected track length 18, got %d", sess.TrackLength())
	}

	sess, _ = sess.AcceptQuestion(1, testQuestion(1))
	sess = sess.appendAnswer(quizgen.Answer{Question: "Question number 1", Answer: "First"})
	if sess.ExpectedIndex() != 2 {
		t.Errorf("expected index 2, got %d", sess.ExpectedIndex())
	}
}
