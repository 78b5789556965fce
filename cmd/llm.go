package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/llm"
	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		rows := events[:0]
		for _, e := range events {
			if purpose == "" || e.Purpose == purpose {
				rows = append(rows, e)
			}
		}
		if len(rows) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-16s  %-28s  %6s  %6s  %7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(100)
		for _, e := range rows {
			ok := theme.Correct.Render("✓")
			if !e.Success {
				ok = theme.Incorrect.Render("✗")
			}
			fmt.Printf("%-5d  %-19s  %-16s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), truncate(e.Purpose, 16),
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Println(theme.Row("ID", strconv.FormatInt(e.ID, 10)))
		fmt.Println(theme.Row("Time", e.Timestamp.Local().Format(timeLayout)))
		fmt.Println(theme.Row("Provider", e.Provider))
		fmt.Println(theme.Row("Model", e.Model))
		fmt.Println(theme.Row("Purpose", e.Purpose))
		if e.SessionID != "" {
			fmt.Println(theme.Row("Session", e.SessionID))
		}
		fmt.Println(theme.Row("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)))
		fmt.Println(theme.Row("Latency", fmt.Sprintf("%dms", e.LatencyMs)))
		fmt.Println(theme.Row("Success", strconv.FormatBool(e.Success)))
		if e.ErrorMessage != "" {
			fmt.Println(theme.Row("Error", theme.Incorrect.Render(e.ErrorMessage)))
		}

		section("REQUEST", e.RequestBody)
		section("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println(theme.Title.Render("Usage by purpose"))
		fmt.Printf("%-18s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
		rule(60)
		var calls, in, out int
		for _, u := range byPurpose {
			fmt.Printf("%-18s  %6d  %10d  %10d  %8d\n",
				truncate(u.Purpose, 18), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		rule(60)
		fmt.Printf("%-18s  %6d  %10d  %10d\n", "TOTAL", calls, in, out)

		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println()
		fmt.Println(theme.Title.Render("Estimated cost (USD)"))
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		rule(76)
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if price := llm.LookupCost(u.Model); price != nil {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		rule(76)
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Println(theme.Hint.Render("Pricing unavailable for: " + strings.Join(unpriced, ", ")))
		}
		return nil
	},
}

func rule(width int) {
	fmt.Println(theme.Inactive.Render(strings.Repeat("─", width)))
}

func section(title, body string) {
	fmt.Println()
	rule(60)
	fmt.Println(theme.Emphasis.Render(title))
	rule(60)
	if body == "" {
		body = theme.Hint.Render("(not captured)")
	}
	fmt.Println(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (progressive-hint, approach-check)")
	llmListCmd.Flags().String("session", "", "Only show calls of this session")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
