package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Planned hours by task type",
	Long: `Show how planned effective hours split across the four task types.
Types with no tasks show up at zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		shares, err := app.CategoryDistributionHandler.Handle(cmd.Context(), queries.CategoryDistributionQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to build category distribution: %w", err)
		}

		fmt.Println("Planned hours by type:")
		for _, share := range shares {
			fmt.Printf("  %-6s %6.1fh  %5.1f%%\n", share.Type, share.EffectiveHours, share.Percentage)
		}
		return nil
	},
}
