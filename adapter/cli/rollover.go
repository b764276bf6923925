package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rolloverDay string

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Archive past days and generate today's grid",
	Long: `Archive every open day before the given one and generate the day's
slot grid from the configured template. Archived days stay readable for
weekly statistics.

Run it in the morning, or from a cron job:
  tempora rollover
  tempora rollover --day 2026-03-02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		day, err := ParseDay(rolloverDay)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.Planner.DailyRollover(ctx, app.CurrentUserID, day)
		if err != nil {
			return fmt.Errorf("rollover failed: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Archived %d day(s).\n", result.ArchivedDays)
		if result.Created {
			fmt.Printf("Generated today's grid: %s\n", result.ScheduleID)
		} else {
			fmt.Printf("Today's grid already exists: %s\n", result.ScheduleID)
		}
		return nil
	},
}

func init() {
	rolloverCmd.Flags().StringVar(&rolloverDay, "day", "", "day to roll over to (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(rolloverCmd)
}
