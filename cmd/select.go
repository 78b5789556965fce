package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/theme"
	"github.com/claritycoach/coach/internal/visual"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the visual aid that best fits the current task",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFlags(cmd)
		if err != nil {
			return err
		}

		if !f.SmartVisualHint {
			if f.LegacyVisualButtons {
				printLegacyButtons()
				return nil
			}
			fmt.Println("Smart visual hints are disabled.")
			return nil
		}

		task, err := taskFromFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sel := visual.NewSelector(visual.WithRecorder(store.NewSelectionRecorder(s.EventRepo())))
		d := sel.Select(cmd.Context(), task)

		printDecision(task.SessionID, d)
		if f.CacheRenderedGraphs {
			return renderCached(cmd.Context(), s.RenderCache(visual.DefaultCacheTTL), task, d)
		}
		return nil
	},
}

// renderCached reuses the rendered visual stored for the subtask when it
// still matches the decision, and stores a fresh one otherwise.
func renderCached(ctx context.Context, cache store.RenderCache, task visual.TaskContext, d visual.Decision) error {
	key := visual.RenderKey(task)
	hit, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	if hit != nil && hit.VisualType == string(d.Type) {
		age := time.Since(hit.RenderedAt).Round(time.Second)
		fmt.Println(theme.Row("Render", "cached "+age.String()+" ago"))
		fmt.Println(theme.Hint.Render(hit.Payload))
		return nil
	}

	payload, err := json.Marshal(visual.NewRenderRequest(task, d))
	if err != nil {
		return fmt.Errorf("encode render request: %w", err)
	}
	err = cache.Put(ctx, store.RenderedVisual{
		Key:        key,
		SessionID:  task.SessionID,
		VisualType: string(d.Type),
		Endpoint:   d.Endpoint,
		Payload:    string(payload),
	})
	if err != nil {
		return err
	}
	fmt.Println(theme.Row("Render", "new"))
	fmt.Println(theme.Hint.Render(string(payload)))
	return nil
}

func taskFromFlags(cmd *cobra.Command) (visual.TaskContext, error) {
	fl := cmd.Flags()
	taskText, _ := fl.GetString("task")
	subtask, _ := fl.GetString("subtask")
	topic, _ := fl.GetString("topic")
	learner, _ := fl.GetString("learner")
	timeSpent, _ := fl.GetInt("time")
	hintsUsed, _ := fl.GetInt("hints")
	questions, _ := fl.GetInt("questions")
	history, _ := fl.GetStringSlice("history")
	sessionID, _ := fl.GetString("session")

	learnerType, err := parseLearner(learner)
	if err != nil {
		return visual.TaskContext{}, err
	}

	previous := make([]visual.VisualType, 0, len(history))
	for _, h := range history {
		t, ok := visual.ParseVisualType(strings.TrimSpace(h))
		if !ok {
			return visual.TaskContext{}, fmt.Errorf("unknown visual type %q in --history", h)
		}
		previous = append(previous, t)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return visual.TaskContext{
		TaskText:    taskText,
		SubtaskText: subtask,
		Topic:       topic,
		LearnerType: learnerType,
		Progress: visual.Progress{
			TimeSpent:       timeSpent,
			HintsUsed:       hintsUsed,
			QuestionsViewed: questions,
		},
		PreviousVisuals: previous,
		SessionID:       sessionID,
	}, nil
}

// parseLearner validates a --learner value.
func parseLearner(s string) (visual.LearnerType, error) {
	switch l := visual.LearnerType(s); l {
	case visual.LearnerVisual, visual.LearnerAnalytical, visual.LearnerExperimental:
		return l, nil
	}
	return "", fmt.Errorf("unknown learner type %q (want visual, analytical or experimental)", s)
}

func printDecision(sessionID string, d visual.Decision) {
	cats := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		cats[i] = string(c)
	}

	fmt.Println(theme.Title.Render(visual.Label(d.Type)))
	fmt.Println(theme.Row("Type", string(d.Type)))
	fmt.Println(theme.Row("Endpoint", d.Endpoint))
	fmt.Println(theme.Row("Reason", d.Reason))
	fmt.Println(theme.Row("Categories", strings.Join(cats, ", ")))
	fmt.Println(theme.Row("Stuck level", fmt.Sprintf("%d", d.StuckLevel)))
	fmt.Println(theme.Row("Session", sessionID))
}

// printLegacyButtons lists every visual as its own button, the way the
// tutor worked before smart selection.
func printLegacyButtons() {
	fmt.Println(theme.Title.Render("Visual aids"))
	for _, t := range visual.AllVisualTypes() {
		fmt.Println(theme.Row(visual.Label(t), visual.Endpoint(t)))
	}
}

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Show the task categories detected in a piece of task text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		for _, c := range visual.DetectTaskTypes(strings.Join(args, " "), topic) {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	fl := selectCmd.Flags()
	fl.StringP("task", "t", "", "Main task text")
	fl.StringP("subtask", "s", "", "Current subtask text")
	fl.String("topic", "", "Task topic")
	fl.StringP("learner", "l", string(visual.LearnerVisual), "Learner type: visual, analytical or experimental")
	fl.Int("time", 0, "Seconds spent on the current task")
	fl.Int("hints", 0, "Hints used so far")
	fl.Int("questions", 0, "Subtasks or questions viewed")
	fl.StringSlice("history", nil, "Visual types already shown, oldest first (e.g. graph,animation)")
	fl.String("session", "", "Session ID (a new one is generated when empty)")

	classifyCmd.Flags().String("topic", "", "Task topic")
}
