package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
)

var flagsOvercome bool

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "High-frequency and overcome reports",
	Long: `List flagged tasks and subtasks sorted by hours. The default report
covers the high-frequency flag; pass --overcome for the other one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		query := queries.FlagReportQuery{UserID: app.CurrentUserID}

		var entries []queries.FlagEntryDTO
		if flagsOvercome {
			entries, err = app.FlagReportHandler.Overcome(cmd.Context(), query)
		} else {
			entries, err = app.FlagReportHandler.HighFrequency(cmd.Context(), query)
		}
		if err != nil {
			return fmt.Errorf("failed to build flag report: %w", err)
		}

		title := "High-frequency"
		if flagsOvercome {
			title = "Overcome"
		}
		if len(entries) == 0 {
			fmt.Printf("%s: nothing flagged.\n", title)
			return nil
		}

		fmt.Printf("%s (%d):\n", title, len(entries))
		for _, e := range entries {
			name := e.Name
			if e.IsSubtask {
				name = e.ParentName + " / " + e.Name
			}
			fmt.Printf("  %6.1fh  %s\n", e.Hours, name)
		}
		return nil
	},
}

func init() {
	flagsCmd.Flags().BoolVar(&flagsOvercome, "overcome", false, "show the overcome report instead")
}
