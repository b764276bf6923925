package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addDay string

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Quick add a task and bind it to the next free slot",
	Long: `Quickly capture a task from free text and drop it into the day's
first empty slot. A trailing hour amount becomes the weekly hours.

Examples:
  tempora add "Read linear algebra"
  tempora add "Read linear algebra 5h"
  tempora add "Morning run" --day 2026-03-02`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		day, err := ParseDay(addDay)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.Planner.QuickAddAndBind(ctx, app.CurrentUserID, strings.Join(args, " "), day)
		if err != nil {
			return fmt.Errorf("failed to quick add: %w", err)
		}
		app.Drain(ctx)

		fmt.Println("Task created and scheduled!")
		fmt.Printf("  task: %s\n", result.TaskID)
		fmt.Printf("  slot: %s\n", result.SlotID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDay, "day", "", "day to schedule into (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd)
}
