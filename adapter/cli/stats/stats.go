// Package stats renders the weekly and daily reports. All percentages are
// computed at full precision and rounded to one decimal only here, at
// display time.
package stats

import (
	"github.com/spf13/cobra"
)

// Cmd is the stats command group.
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly and daily reports",
	Long: `Reports over your tasks and slot grids: weekly completion, category
split, per-day chart, mood summaries, flag reports and the
recommendation acceptance rate.

Every report is recomputed from the tasks and grids as they are now.`,
}

// statsDay anchors the week (or day) a report covers.
var statsDay string

func init() {
	Cmd.PersistentFlags().StringVar(&statsDay, "day", "", "anchor day (YYYY-MM-DD, default today)")

	Cmd.AddCommand(overviewCmd)
	Cmd.AddCommand(categoriesCmd)
	Cmd.AddCommand(chartCmd)
	Cmd.AddCommand(moodsCmd)
	Cmd.AddCommand(flagsCmd)
	Cmd.AddCommand(acceptanceCmd)
}
