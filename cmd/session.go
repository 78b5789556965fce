package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/assessment"
	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/theme"
	"github.com/claritycoach/coach/internal/visual"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start, log, list and rate tutoring sessions",
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a fresh session ID",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(uuid.NewString())
	},
}

var sessionLogCmd = &cobra.Command{
	Use:   "log <session-id>",
	Short: "Summarize a finished session from its recorded events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFlags(cmd)
		if err != nil {
			return err
		}

		fl := cmd.Flags()
		learnerName, _ := fl.GetString("learner-name")
		learner, _ := fl.GetString("learner")
		topic, _ := fl.GetString("topic")
		tasks, _ := fl.GetInt("tasks")
		subtasks, _ := fl.GetInt("subtasks")
		duration, _ := fl.GetDuration("duration")

		learnerType, err := parseLearner(learner)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		sessionID := args[0]

		selections, err := repo.QueryVisualSelections(ctx, store.QueryOpts{SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query visual selections: %w", err)
		}
		hintsUsed, checks, err := repo.SessionActivity(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("query session activity: %w", err)
		}

		end := time.Now()
		start := end.Add(-duration)
		// Selections come newest first; visuals are kept oldest first.
		visuals := make([]visual.VisualType, 0, len(selections))
		for i := len(selections) - 1; i >= 0; i-- {
			visuals = append(visuals, visual.VisualType(selections[i].VisualType))
		}
		if duration == 0 && len(selections) > 0 {
			start = selections[len(selections)-1].Timestamp
		}

		sum := assessment.Summarize(assessment.SessionInput{
			SessionID:      sessionID,
			LearnerName:    learnerName,
			Topic:          topic,
			LearnerType:    learnerType,
			Start:          start,
			End:            end,
			Tasks:          tasks,
			Subtasks:       subtasks,
			Visuals:        visuals,
			HintsUsed:      hintsUsed,
			ApproachChecks: checks,
		}, f.TrackSelfSufficiency)

		err = repo.AppendSession(ctx, store.SessionEventData{
			SessionID:       sum.SessionID,
			LearnerName:     sum.LearnerName,
			Topic:           sum.Topic,
			LearnerType:     string(sum.LearnerType),
			StartedAt:       sum.StartedAt,
			DurationSecs:    int(sum.Duration.Seconds()),
			Tasks:           sum.Tasks,
			Subtasks:        sum.Subtasks,
			Visualizations:  sum.Visualizations,
			Animations:      sum.Animations,
			Graphs:          sum.Graphs,
			HintsUsed:       sum.HintsUsed,
			ApproachChecks:  sum.ApproachChecks,
			SelfSufficiency: sum.SelfSufficiency,
		})
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		printSummary(sum)
		return nil
	},
}

func printSummary(sum assessment.SessionSummary) {
	fmt.Println(theme.Title.Render("Session " + sum.SessionID))
	if sum.LearnerName != "" {
		fmt.Println(theme.Row("Learner", sum.LearnerName))
	}
	if sum.Topic != "" {
		fmt.Println(theme.Row("Topic", sum.Topic))
	}
	fmt.Println(theme.Row("Duration", sum.Duration.Round(time.Second).String()))
	fmt.Println(theme.Row("Tasks", fmt.Sprintf("%d (%d subtasks)", sum.Tasks, sum.Subtasks)))
	fmt.Println(theme.Row("Visuals", fmt.Sprintf("%d (%d graphs, %d animations, %d other)",
		sum.TotalVisuals(), sum.Graphs, sum.Animations, sum.Visualizations)))
	fmt.Println(theme.Row("Hints", fmt.Sprintf("%d", sum.HintsUsed)))
	fmt.Println(theme.Row("Checks", fmt.Sprintf("%d", sum.ApproachChecks)))
	if sum.SelfSufficiency > 0 {
		fmt.Println(theme.Row("Self-suff.", fmt.Sprintf("%d/5 %s",
			sum.SelfSufficiency, assessment.ScoreLabel(sum.SelfSufficiency))))
	}
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions logged yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-18s  %8s  %7s  %5s  %6s  %4s\n",
			"Session", "Started", "Topic", "Duration", "Visuals", "Hints", "Checks", "Self")
		fmt.Println(strings.Repeat("─", 114))
		for _, rec := range sessions {
			self := "-"
			if rec.SelfSufficiency > 0 {
				self = fmt.Sprintf("%d/5", rec.SelfSufficiency)
			}
			fmt.Printf("%-36s  %-16s  %-18s  %8s  %7d  %5d  %6d  %4s\n",
				truncate(rec.SessionID, 36),
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(rec.Topic, 18),
				(time.Duration(rec.DurationSecs) * time.Second).String(),
				rec.Visualizations+rec.Animations+rec.Graphs,
				rec.HintsUsed,
				rec.ApproachChecks,
				self,
			)
		}
		return nil
	},
}

var sessionRateCmd = &cobra.Command{
	Use:   "rate <session-id>",
	Short: "Record a tutor's evaluation of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fl := cmd.Flags()
		ev := assessment.Evaluation{SessionID: args[0]}
		ev.Assessor, _ = fl.GetString("assessor")
		ev.AIQuestionQuality, _ = fl.GetInt("question-quality")
		ev.EngagementLevel, _ = fl.GetInt("engagement")
		ev.UnderstandingProgress, _ = fl.GetInt("understanding")
		ev.EfficiencyScore, _ = fl.GetInt("efficiency")
		ev.LearnerTypeIndicator, _ = fl.GetString("learner-indicator")
		ev.QuestionLoops, _ = fl.GetInt("loops")
		ev.Remarks, _ = fl.GetString("remarks")
		ev.FurtherConsiderations, _ = fl.GetString("considerations")

		if err := ev.Validate(); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		err = s.EventRepo().AppendEvaluation(cmd.Context(), store.EvaluationEventData{
			SessionID:             ev.SessionID,
			Assessor:              ev.Assessor,
			AIQuestionQuality:     ev.AIQuestionQuality,
			EngagementLevel:       ev.EngagementLevel,
			UnderstandingProgress: ev.UnderstandingProgress,
			EfficiencyScore:       ev.EfficiencyScore,
			LearnerTypeIndicator:  ev.LearnerTypeIndicator,
			QuestionLoops:         ev.QuestionLoops,
			Remarks:               ev.Remarks,
			FurtherConsiderations: ev.FurtherConsiderations,
		})
		if err != nil {
			return fmt.Errorf("save evaluation: %w", err)
		}
		fmt.Printf("Recorded evaluation for %s (average %.2f)\n", ev.SessionID, ev.Average())
		return nil
	},
}

func init() {
	fl := sessionLogCmd.Flags()
	fl.String("learner-name", "", "Learner name")
	fl.StringP("learner", "l", string(visual.LearnerVisual), "Learner type: visual, analytical or experimental")
	fl.String("topic", "", "Session topic")
	fl.Int("tasks", 0, "Tasks worked on")
	fl.Int("subtasks", 0, "Subtasks worked on")
	fl.Duration("duration", 0, "Session length (defaults to time since the first visual selection)")

	sessionListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")

	rl := sessionRateCmd.Flags()
	rl.String("assessor", "", "Name of the evaluating tutor")
	rl.Int("question-quality", 0, "Quality of the tutor's questions (1-5)")
	rl.Int("engagement", 0, "Learner engagement (1-5)")
	rl.Int("understanding", 0, "Progress in understanding (1-5)")
	rl.Int("efficiency", 0, "Efficiency (1-5)")
	rl.String("learner-indicator", "", "Observed learner type")
	rl.Int("loops", 0, "Number of question loops")
	rl.String("remarks", "", "Free-form remarks")
	rl.String("considerations", "", "Further considerations")

	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionLogCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionRateCmd)
}
