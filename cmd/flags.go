package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/claritycoach/coach/internal/flags"
	"github.com/claritycoach/coach/internal/ui/theme"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show feature flag status",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFlags(cmd)
		if err != nil {
			return err
		}
		for _, fl := range f.List() {
			state := theme.Inactive.Render("off")
			if fl.Enabled {
				state = theme.Active.Render("on")
			}
			fmt.Println(theme.Label.Width(24).Render(fl.Name) + state)
		}
		fmt.Println()
		fmt.Println(theme.Hint.Render(f.Status().Summary))
		return nil
	},
}

var flagsSetCmd = &cobra.Command{
	Use:   "set <name> <true|false>",
	Short: "Turn a feature flag on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		path, err := flagsPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve flags path: %w", err)
		}
		f, err := flags.Load(path)
		if err != nil {
			return fmt.Errorf("load flags: %w", err)
		}
		if err := f.Set(args[0], enabled); err != nil {
			return err
		}
		if err := f.Validate(); err != nil {
			return err
		}
		if err := flags.Save(path, f); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		fmt.Printf("%s = %v (%s)\n", args[0], enabled, path)
		return nil
	},
}

var flagsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default flag file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := flagsPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve flags path: %w", err)
		}
		if err := flags.Save(path, flags.Default()); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	flagsCmd.AddCommand(flagsSetCmd)
	flagsCmd.AddCommand(flagsInitCmd)
}
