package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/hints"
	"github.com/claritycoach/coach/internal/llm"
	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/theme"
)

var errFeatureDisabled = errors.New("feature is disabled by flags")

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Ask for a progressive Socratic hint on a subtask",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFlags(cmd)
		if err != nil {
			return err
		}
		if !f.ProgressiveHints {
			return fmt.Errorf("progressive hints: %w", errFeatureDisabled)
		}

		fl := cmd.Flags()
		level, _ := fl.GetInt("level")
		previous, _ := fl.GetStringArray("previous")
		sessionID, _ := fl.GetString("session")
		req := hints.HintRequest{
			TaskNumber:    stringFlag(cmd, "task-number"),
			TaskText:      stringFlag(cmd, "task"),
			Topic:         stringFlag(cmd, "topic"),
			SubLabel:      stringFlag(cmd, "sub-label"),
			SubtaskText:   stringFlag(cmd, "subtask"),
			Level:         hints.Level(level),
			PreviousHints: previous,
		}

		return withTutor(cmd, sessionID, func(ctx context.Context, svc *hints.Service, repo store.EventRepo) error {
			h, err := svc.Hint(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println(theme.Title.Render(fmt.Sprintf("Hinweis (Stufe %d)", h.Level)))
			fmt.Println(theme.Value.Render(h.Text))
			fmt.Println(theme.Hint.Render(h.Encouragement))

			err = repo.AppendHint(ctx, store.HintEventData{
				SessionID:     sessionID,
				Level:         int(h.Level),
				SubtaskText:   req.SubtaskText,
				HintText:      h.Text,
				Encouragement: h.Encouragement,
			})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record hint: %v\n", err)
			}
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a learner's approach without revealing the solution",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFlags(cmd)
		if err != nil {
			return err
		}
		if !f.SmartApproachChecker {
			return fmt.Errorf("approach checker: %w", errFeatureDisabled)
		}

		sessionID, _ := cmd.Flags().GetString("session")
		req := hints.ApproachRequest{
			TaskText:    stringFlag(cmd, "task"),
			Topic:       stringFlag(cmd, "topic"),
			SubLabel:    stringFlag(cmd, "sub-label"),
			SubtaskText: stringFlag(cmd, "subtask"),
			StudentWork: stringFlag(cmd, "work"),
		}

		return withTutor(cmd, sessionID, func(ctx context.Context, svc *hints.Service, repo store.EventRepo) error {
			fb, err := svc.CheckApproach(ctx, req)
			if err != nil {
				return err
			}
			printFeedback(fb)

			err = repo.AppendApproachCheck(ctx, store.ApproachCheckEventData{
				SessionID:    sessionID,
				SubtaskText:  req.SubtaskText,
				StudentWork:  req.StudentWork,
				OnRightTrack: fb.OnRightTrack,
				Confidence:   fb.Confidence,
				NextStep:     fb.NextStep,
			})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record approach check: %v\n", err)
			}
			return nil
		})
	},
}

// tutorProvider builds the configured LLM provider with event logging.
// Tests replace it with a scripted provider.
var tutorProvider = func(ctx context.Context, repo store.EventRepo) (llm.Provider, error) {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return llm.NewProvider(ctx, cfg, repo)
}

// withTutor opens the store, builds the LLM provider and runs fn with a
// hint service.
func withTutor(cmd *cobra.Command, sessionID string, fn func(context.Context, *hints.Service, store.EventRepo) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	repo := s.EventRepo()
	provider, err := tutorProvider(ctx, repo)
	if err != nil {
		return err
	}

	if sessionID != "" {
		ctx = llm.WithSession(ctx, sessionID)
	}
	return fn(ctx, hints.NewService(provider, hints.DefaultConfig()), repo)
}

func printFeedback(fb *hints.ApproachFeedback) {
	verdict := theme.Incorrect.Render("Noch nicht auf dem richtigen Weg")
	if fb.OnRightTrack {
		verdict = theme.Correct.Render("Auf dem richtigen Weg")
	}
	fmt.Println(verdict + theme.Hint.Render(fmt.Sprintf("  (%d/5)", fb.Confidence)))
	fmt.Println(theme.Value.Render(fb.OverallAssessment))

	printList("Stärken", fb.Strengths)
	printList("Verbesserungen", fb.Improvements)
	if fb.SpecificIssue != "" {
		fmt.Println(theme.Row("Problem", fb.SpecificIssue))
	}
	fmt.Println(theme.Row("Nächster Schritt", fb.NextStep))
	fmt.Println(theme.Hint.Render(fb.Encouragement))
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println(theme.Emphasis.Render(title))
	for _, it := range items {
		fmt.Println("  - " + it)
	}
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}

func init() {
	for _, c := range []*cobra.Command{hintCmd, checkCmd} {
		fl := c.Flags()
		fl.StringP("task", "t", "", "Main task text")
		fl.StringP("subtask", "s", "", "Subtask text (required)")
		fl.String("topic", "", "Task topic")
		fl.String("sub-label", "", "Subtask label, e.g. a")
		fl.String("session", "", "Session ID to attach events to")
	}
	hintCmd.Flags().String("task-number", "", "Task number")
	hintCmd.Flags().IntP("level", "l", 1, "Hint level: 1 question, 2 next step, 3 specific help")
	hintCmd.Flags().StringArray("previous", nil, "A previous hint (repeatable)")
	checkCmd.Flags().StringP("work", "w", "", "The learner's work (required)")
}
