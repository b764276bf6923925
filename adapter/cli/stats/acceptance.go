package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/insights/application/queries"
)

var acceptanceCmd = &cobra.Command{
	Use:   "acceptance",
	Short: "Recommendation acceptance rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		rate, err := app.AcceptanceRateHandler.Handle(cmd.Context(), queries.AcceptanceRateQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to build acceptance rate: %w", err)
		}

		if rate.Total == 0 {
			fmt.Println("No recommendation decisions yet.")
			return nil
		}

		fmt.Printf("Accepted %d of %d recommendations (%.1f%%)\n",
			rate.Accepted, rate.Total, rate.Rate*100)
		return nil
	},
}
