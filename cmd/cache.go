package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/ui/theme"
	"github.com/claritycoach/coach/internal/visual"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear rendered visuals",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rendered visuals that are still fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.RenderCache(visual.DefaultCacheTTL).List(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No rendered visuals cached.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-10s %-12s %s\n",
				e.RenderedAt.Local().Format(time.DateTime), e.VisualType, e.Endpoint, truncate(e.SessionID, 36))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete rendered visuals of one session, or all of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.RenderCache(visual.DefaultCacheTTL).Clear(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		fmt.Println(theme.Row("Cleared", fmt.Sprintf("%d", n)))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cacheListCmd, cacheClearCmd} {
		c.Flags().String("session", "", "Only this session")
	}
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd)
}
