package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/hints"
	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/theme"
	"github.com/claritycoach/coach/internal/visual"
)

var clarifyCmd = &cobra.Command{
	Use:   "clarify [task text]",
	Short: "Split a worksheet into tasks, subtasks and Socratic questions",
	Long: "Clarify sends the worksheet text to the LLM and prints every task with its\n" +
		"subtasks and 3-5 task-specific Socratic questions. The text comes from the\n" +
		"arguments, from --file, or from stdin with --file -.",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := clarifyInput(cmd, args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return hints.ErrEmptyTask
		}

		fl := cmd.Flags()
		sessionID, _ := fl.GetString("session")
		asJSON, _ := fl.GetBool("json")
		withVisuals, _ := fl.GetBool("visuals")
		learner, _ := fl.GetString("learner")

		learnerType, err := parseLearner(learner)
		if err != nil {
			return err
		}

		var sel *visual.Selector
		if withVisuals {
			f, err := loadFlags(cmd)
			if err != nil {
				return err
			}
			if f.SmartVisualHint {
				sel = visual.NewSelector()
			}
		}

		return withTutor(cmd, sessionID, func(ctx context.Context, svc *hints.Service, repo store.EventRepo) error {
			d, err := svc.Decompose(ctx, text)
			if err != nil {
				return err
			}

			result, err := json.Marshal(d)
			if err != nil {
				return fmt.Errorf("encode decomposition: %w", err)
			}
			err = repo.AppendDecomposition(ctx, store.DecompositionEventData{
				SessionID:  sessionID,
				SourceText: text,
				Tasks:      len(d.Tasks),
				Subtasks:   d.SubtaskCount(),
				Result:     string(result),
			})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record decomposition: %v\n", err)
			}

			if asJSON {
				fmt.Println(string(result))
				return nil
			}
			printDecomposition(ctx, d, sel, visual.TaskContext{LearnerType: learnerType, SessionID: sessionID})
			return nil
		})
	},
}

// clarifyInput returns the worksheet text from --file or the arguments.
func clarifyInput(cmd *cobra.Command, args []string) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return strings.Join(args, " "), nil
	}

	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read task text: %w", err)
	}
	return string(b), nil
}

// printDecomposition prints every task. When sel is set, each subtask also
// gets the visual aid the selector would pick for it.
func printDecomposition(ctx context.Context, d *hints.Decomposition, sel *visual.Selector, base visual.TaskContext) {
	for i, t := range d.Tasks {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(theme.Title.Render(fmt.Sprintf("Aufgabe %s: %s", t.Number, t.Topic)))
		fmt.Println(theme.Row("Schwierigkeit", string(t.Difficulty)))
		fmt.Println(theme.Value.Render(t.Text))

		for _, st := range t.Subtasks {
			fmt.Println()
			fmt.Println(theme.Emphasis.Render(st.Label + ") " + st.Text))
			for _, q := range st.Questions {
				fmt.Println("  - " + q)
			}
			if sel == nil {
				continue
			}
			task := base
			task.TaskText = t.Text
			task.SubtaskText = st.Text
			task.Topic = t.Topic
			dec := sel.Select(ctx, task)
			fmt.Println(theme.Row("Visual", visual.Label(dec.Type)+"  "+theme.Hint.Render(dec.Endpoint)))
		}
	}
}

func init() {
	fl := clarifyCmd.Flags()
	fl.StringP("file", "f", "", "Read the task text from a file (- for stdin)")
	fl.String("session", "", "Session ID to attach events to")
	fl.Bool("json", false, "Print the decomposition as JSON")
	fl.Bool("visuals", false, "Suggest a visual aid for every subtask")
	fl.StringP("learner", "l", string(visual.LearnerVisual), "Learner type: visual, analytical or experimental")
}
