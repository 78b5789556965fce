package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/ui/components"
	"github.com/claritycoach/coach/internal/ui/theme"
	"github.com/claritycoach/coach/internal/visual"
)

const barWidth = 60

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visual aid usage by type and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{SessionID: sessionID}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		usage, err := s.EventRepo().VisualUsageCounts(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if usage.Total == 0 {
			fmt.Println("No visual selections recorded yet.")
			return nil
		}

		fmt.Println(theme.Title.Render(fmt.Sprintf("Visual selections: %d", usage.Total)))
		fmt.Println()
		fmt.Println(theme.Emphasis.Render("By type"))
		for _, t := range visual.AllVisualTypes() {
			fmt.Println(components.NewBar(string(t), usage.ByType[string(t)], usage.Total, barWidth).View())
		}

		fmt.Println()
		fmt.Println(theme.Emphasis.Render("By category"))
		for _, c := range sortedKeys(usage.ByCategory) {
			fmt.Println(components.NewBar(c, usage.ByCategory[c], usage.Total, barWidth).View())
		}
		return nil
	},
}

// sortedKeys orders by count descending, then name.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func init() {
	statsCmd.Flags().String("session", "", "Only count selections of this session")
	statsCmd.Flags().Duration("since", 0, "Only count selections newer than this (e.g. 24h)")
}
