package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yashir5686/disha-portal/internal/llm"
	"github.com/yashir5686/disha-portal/internal/quiz"
	"github.com/yashir5686/disha-portal/internal/quizgen"
	"github.com/yashir5686/disha-portal/internal/recommend"
	"github.com/yashir5686/disha-portal/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the adaptive career quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

// runQuiz wires dependencies and drives the interactive terminal loop.
// Everything here is presentation glue; the state machine lives in
// internal/quiz.
func runQuiz(cmd *cobra.Command) error {
	ctx := cmd.Context()
	userID := resolveUserID(cmd)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("configure content provider: %w", err)
	}

	svc := quiz.NewService(
		quizgen.New(provider, quizgen.DefaultConfig()),
		recommend.New(provider, recommend.DefaultConfig()),
		st.ProfileRepo(),
	)

	in := bufio.NewScanner(os.Stdin)

	if rec, err := svc.LastRecommendation(ctx, userID); err == nil && rec != nil {
		fmt.Println("You already have a saved recommendation (see 'disha report').")
		fmt.Print("Start over and discard it? [y/N] ")
		if !readYes(in) {
			return nil
		}
		if _, err := svc.Restart(ctx, userID); err != nil {
			return err
		}
	}

	grade, stream, err := askGradeAndStream(in)
	if err != nil {
		return err
	}

	fmt.Println("\nGenerating your first question...")
	sess, err := svc.Start(ctx, grade, stream)
	if err != nil {
		return err
	}

	for sess.Stage == quiz.StageInProgress {
		sess, err = askQuestion(ctx, svc, sess, in)
		if errors.Is(err, errAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if sess.Stage != quiz.StageCollectingProfile {
		return nil // user backed out
	}

	rec, err := collectProfileAndAssemble(ctx, svc, sess, userID, in)
	if err != nil {
		return err
	}
	if rec != nil {
		printRecommendation(rec)
	}
	return nil
}

func askGradeAndStream(in *bufio.Scanner) (quizgen.Grade, string, error) {
	fmt.Println("Which class are you in?")
	fmt.Println("  1) 10th")
	fmt.Println("  2) 12th")
	fmt.Print("> ")

	var grade quizgen.Grade
	switch readLine(in) {
	case "1":
		grade = quizgen.Grade10
	case "2":
		grade = quizgen.Grade12
	default:
		return "", "", fmt.Errorf("pick 1 or 2")
	}

	var stream string
	if grade == quizgen.Grade12 {
		fmt.Println("\nWhich stream are you studying?")
		fmt.Println("  e.g. Science (PCM), Science (PCB), Commerce, Arts, Vocational")
		fmt.Print("> ")
		stream = readLine(in)
	}

	return grade, stream, nil
}

// errAborted signals the user declined to continue; not a failure.
var errAborted = errors.New("quiz aborted")

// askQuestion renders the current question and processes one selection.
// 'b' goes back, generation failures offer an explicit retry.
func askQuestion(ctx context.Context, svc *quiz.Service, sess quiz.Session, in *bufio.Scanner) (quiz.Session, error) {
	q := sess.CurrentQuestion()
	if q == nil {
		// A previous fetch failed; try again for the same index.
		return svc.NextQuestion(ctx, sess)
	}
	fmt.Printf("\nQuestion %d of %d\n", sess.ExpectedIndex(), sess.TrackLength())
	fmt.Println(q.Text)
	for i, o := range q.Options {
		fmt.Printf("  %d) %s\n", i+1, o.Label)
	}
	fmt.Print("Answer (number, comma-separated for several; 'b' to go back): ")

	input := readLine(in)
	if strings.EqualFold(input, "b") {
		return svc.GoBack(sess), nil
	}

	selection, err := parseSelection(input, q)
	if err != nil {
		fmt.Println(err)
		return sess, nil // re-ask the same question
	}

	// On error the returned session is the last good state: a failed fetch
	// keeps the just-accepted answer so retrying does not lose it.
	next, err := svc.Answer(ctx, sess, selection)
	if err != nil {
		var genErr *quiz.GenerationError
		if errors.As(err, &genErr) {
			fmt.Printf("Could not load the next question: %v\n", genErr.Err)
			fmt.Print("Try again? [Y/n] ")
			if readLine(in) != "n" {
				return svc.NextQuestion(ctx, next)
			}
			return next, errAborted
		}
		var valErr *quiz.ValidationError
		if errors.As(err, &valErr) {
			fmt.Println(valErr.Message)
			return next, nil
		}
		return next, err
	}
	return next, nil
}

func collectProfileAndAssemble(ctx context.Context, svc *quiz.Service, sess quiz.Session, userID string, in *bufio.Scanner) (*recommend.Recommendation, error) {
	for {
		fmt.Println("\nTell us about yourself: background, favorite subjects, hobbies, goals.")
		fmt.Print("> ")
		profile := readLine(in)

		fmt.Println("\nPreparing your personalized recommendation...")
		next, rec, err := svc.SubmitProfile(ctx, sess, userID, profile)
		if err != nil {
			var valErr *quiz.ValidationError
			if errors.As(err, &valErr) {
				fmt.Println(valErr.Message)
				continue
			}
			var genErr *quiz.GenerationError
			if errors.As(err, &genErr) {
				fmt.Printf("Could not generate your recommendation: %v\n", genErr.Err)
				fmt.Print("Try again? [Y/n] ")
				if readLine(in) != "n" {
					sess = next
					continue
				}
				return nil, nil
			}
			return nil, err
		}
		return rec, nil
	}
}

// parseSelection maps 1-based option numbers to option ids.
func parseSelection(input string, q *quizgen.Question) ([]string, error) {
	parts := strings.Split(input, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > len(q.Options) {
			return nil, fmt.Errorf("pick a number between 1 and %d", len(q.Options))
		}
		ids = append(ids, q.Options[n-1].ID)
	}
	return ids, nil
}

func printRecommendation(rec *recommend.Recommendation) {
	sep := strings.Repeat("─", 60)

	fmt.Println()
	fmt.Println(sep)
	fmt.Println(rec.Title)
	fmt.Println(sep)
	fmt.Printf("Recommendation: %s\n\n", rec.Recommendation)
	fmt.Println(rec.Reasoning)

	if len(rec.InterestAnalysis) > 0 {
		fmt.Println("\nYour interest profile:")
		for _, ia := range rec.InterestAnalysis {
			fmt.Printf("  %-14s %3.0f/100  %s\n", ia.Area, ia.Score, ia.Summary)
		}
	}

	for _, d := range rec.DegreeOptions {
		fmt.Printf("\n%s — %s\n", d.Name, d.Description)
		printCareerList("  Private jobs", d.CareerOptions.PrivateJobs)
		printCareerList("  Government", d.CareerOptions.GovtJobs)
		printCareerList("  Higher studies", d.CareerOptions.HigherEducation)
		printCareerList("  Entrepreneurship", d.CareerOptions.Entrepreneurship)
	}

	if len(rec.CollegeSuggestions) > 0 {
		fmt.Println("\nColleges to consider:")
		for _, c := range rec.CollegeSuggestions {
			fmt.Printf("  %s, %s (%s)\n", c.Name, c.Location, c.EntranceExam)
		}
	}

	if len(rec.AlternativeRecommendations) > 0 {
		fmt.Println("\nAlternative paths:")
		for _, a := range rec.AlternativeRecommendations {
			fmt.Printf("  - %s\n", a)
		}
	}
	fmt.Println()
}

func printCareerList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s: %s\n", label, strings.Join(items, ", "))
}

func readLine(in *bufio.Scanner) string {
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func readYes(in *bufio.Scanner) bool {
	answer := strings.ToLower(readLine(in))
	return answer == "y" || answer == "yes"
}
