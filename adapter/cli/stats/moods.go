package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "Mood summary for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		day, err := cli.ParseDay(statsDay)
		if err != nil {
			return err
		}

		summary, err := app.MoodSummaryHandler.Handle(cmd.Context(), queries.MoodSummaryQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to build mood summary: %w", err)
		}

		fmt.Printf("Moods on %s:\n", summary.Day.Format("2006-01-02"))
		if len(summary.Counts) == 0 {
			fmt.Println("  no moods recorded")
			return nil
		}

		for _, mood := range scheduleDomain.AllMoods() {
			if count := summary.Counts[mood.String()]; count > 0 {
				fmt.Printf("  %-8s %d\n", mood, count)
			}
		}
		fmt.Printf("Dominant: %s\n", summary.Dominant)
		return nil
	},
}
