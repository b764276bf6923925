package recommend

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	recommendationQueries "github.com/temporahq/tempora/internal/recommendation/application/queries"
)

// Cmd is the recommend command group.
var Cmd = &cobra.Command{
	Use:   "recommend",
	Short: "Accept or reject slot recommendations",
	Long: `Act on recommended slots. Accepting binds the recommended task;
rejecting clears the recommendation. Either way the decision is kept
for the acceptance-rate report.`,
}

var recommendDay string

var acceptCmd = &cobra.Command{
	Use:   "accept <slot>",
	Short: "Accept a slot's recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		slotID, err := cli.ResolveSlot(ctx, app, recommendDay, args[0])
		if err != nil {
			return err
		}

		if err := app.Planner.AcceptRecommendation(ctx, app.CurrentUserID, slotID); err != nil {
			return fmt.Errorf("failed to accept recommendation: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Recommendation accepted for slot %s\n", slotID)
		return nil
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <slot>",
	Short: "Reject a slot's recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		slotID, err := cli.ResolveSlot(ctx, app, recommendDay, args[0])
		if err != nil {
			return err
		}

		if err := app.Planner.RejectRecommendation(ctx, app.CurrentUserID, slotID); err != nil {
			return fmt.Errorf("failed to reject recommendation: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Recommendation rejected for slot %s\n", slotID)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Show the recorded decision for a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		slotID, err := cli.ResolveSlot(ctx, app, recommendDay, args[0])
		if err != nil {
			return err
		}

		decision, err := app.DecisionForHandler.Handle(ctx, recommendationQueries.DecisionForQuery{
			SlotID: slotID,
		})
		if err != nil {
			return fmt.Errorf("failed to load decision: %w", err)
		}
		if decision == nil {
			fmt.Println("No decision recorded for this slot.")
			return nil
		}

		verdict := "rejected"
		if decision.Accepted {
			verdict = "accepted"
		}
		fmt.Printf("Slot %s: %s at %s\n", slotID, verdict, decision.DecidedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	Cmd.PersistentFlags().StringVar(&recommendDay, "day", "", "day of the slot (YYYY-MM-DD, default today)")

	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(rejectCmd)
	Cmd.AddCommand(showCmd)
}
