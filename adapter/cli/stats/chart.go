package stats

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
)

// barScale is how many characters one completed hour occupies.
const barScale = 2

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Per-day completed hours for the week",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		day, err := cli.ParseDay(statsDay)
		if err != nil {
			return err
		}

		chart, err := app.WeeklyChartHandler.Handle(cmd.Context(), queries.WeeklyChartQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to build chart: %w", err)
		}

		fmt.Printf("Week %s - %s\n",
			chart.WeekStart.Format("2006-01-02"), chart.WeekEnd.Format("2006-01-02"))
		for _, col := range chart.Days {
			bar := strings.Repeat("#", int(col.CompletedHours*barScale))
			fmt.Printf("  %s  %5.1fh  %s\n", col.Day.Format("Mon"), col.CompletedHours, bar)
		}

		fmt.Println("Completed hours by type:")
		for _, share := range chart.Categories {
			fmt.Printf("  %-6s %6.1fh  %5.1f%%\n", share.Type, share.EffectiveHours, share.Percentage)
		}
		return nil
	},
}
