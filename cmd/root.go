package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/flags"
	"github.com/claritycoach/coach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Socratic math tutor toolkit",
	Long: "Coach splits worksheets into Socratic questions, picks the visual aid that\n" +
		"fits a stuck learner, hands out progressive hints and keeps a record of every\n" +
		"tutoring session.",
	SilenceUsage: true,
}

// Execute loads .env when present and runs the root command.
func Execute() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COACH_DB env var)")
	rootCmd.PersistentFlags().String("flags", "", "Path to feature flag YAML file (overrides COACH_FLAGS env var)")

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(clarifyCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// flagsPath returns the --flags value or the resolved default location.
func flagsPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("flags"); p != "" {
		return p, nil
	}
	return flags.ResolvePath()
}

// loadFlags reads feature flags, falling back to defaults when no file
// exists.
func loadFlags(cmd *cobra.Command) (flags.Flags, error) {
	path, err := flagsPath(cmd)
	if err != nil {
		return flags.Flags{}, fmt.Errorf("resolve flags path: %w", err)
	}
	f, err := flags.Load(path)
	if err != nil {
		return flags.Flags{}, fmt.Errorf("load flags: %w", err)
	}
	return f, nil
}
