package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Weekly completion overview",
	Long: `Show the week's headline numbers: completed study hours, slot
completion and how many slots are still in progress.

The week runs Monday to Sunday around the anchor day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		day, err := cli.ParseDay(statsDay)
		if err != nil {
			return err
		}

		overview, err := app.WeeklyOverviewHandler.Handle(cmd.Context(), queries.WeeklyOverviewQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to build overview: %w", err)
		}

		fmt.Printf("Week %s - %s\n",
			overview.WeekStart.Format("2006-01-02"), overview.WeekEnd.Format("2006-01-02"))
		fmt.Printf("  study hours:  %.1f\n", overview.TotalStudyHours)
		fmt.Printf("  slots:        %d/%d completed (%.1f%%)\n",
			overview.CompletedSlots, overview.TotalSlots, overview.CompletionRate*100)
		if overview.InProgressSlots > 0 {
			fmt.Printf("  in progress:  %d\n", overview.InProgressSlots)
		}
		return nil
	},
}
