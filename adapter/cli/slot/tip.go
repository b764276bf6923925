package slot

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/schedule/application/commands"
)

var tipTask string

var tipCmd = &cobra.Command{
	Use:   "tip <slot> <text>",
	Short: "Attach a planning tip to a slot",
	Long: `Attach an assistant-generated tip to a slot, optionally naming the
task it recommends. The slot shows up as recommended until you accept
or reject it.

Examples:
  tempora slot tip 3 "Good hour for deep work" --task 6b1f...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		slotID, err := resolveSlot(ctx, app, args[0])
		if err != nil {
			return err
		}

		tipCommand := commands.AttachAITipCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
			Tip:    args[1],
		}
		if tipTask != "" {
			taskID, err := uuid.Parse(tipTask)
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			tipCommand.RecommendedTaskID = &taskID
		}

		if err := app.AttachAITipHandler.Handle(ctx, tipCommand); err != nil {
			return fmt.Errorf("failed to attach tip: %w", err)
		}
		app.Drain(ctx)

		fmt.Println("Tip attached.")
		return nil
	},
}

func init() {
	tipCmd.Flags().StringVar(&tipTask, "task", "", "task id the tip recommends binding")
}
