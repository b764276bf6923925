package slot

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/schedule/application/commands"
)

var unbindCmd = &cobra.Command{
	Use:   "unbind <slot>",
	Short: "Release a slot's task binding",
	Args:  cobra.ExactArgs(1),
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

		if err := app.UnbindSlotHandler.Handle(ctx, commands.UnbindSlotCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
		}); err != nil {
			return fmt.Errorf("failed to unbind slot: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Slot %s unbound\n", slotID)
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start <slot>",
	Short: "Start working a bound slot",
	Args:  cobra.ExactArgs(1),
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

		if err := app.StartSlotHandler.Handle(ctx, commands.StartSlotCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
		}); err != nil {
			return fmt.Errorf("failed to start slot: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Slot %s started\n", slotID)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:     "done <slot>",
	Short:   "Complete a slot",
	Aliases: []string{"complete"},
	Args:    cobra.ExactArgs(1),
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

		if err := app.CompleteSlotHandler.Handle(ctx, commands.CompleteSlotCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
		}); err != nil {
			return fmt.Errorf("failed to complete slot: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Slot %s completed\n", slotID)
		return nil
	},
}

var reopenTo string

var reopenCmd = &cobra.Command{
	Use:   "reopen <slot>",
	Short: "Reopen a completed slot",
	Long: `Reopen a completed slot to fix a mistake. The slot returns to the
pending state by default; pass --to in_progress to resume working it.`,
	Args: cobra.ExactArgs(1),
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

		if err := app.ReopenSlotHandler.Handle(ctx, commands.ReopenSlotCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
			To:     reopenTo,
		}); err != nil {
			return fmt.Errorf("failed to reopen slot: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Slot %s reopened\n", slotID)
		return nil
	},
}

func init() {
	reopenCmd.Flags().StringVar(&reopenTo, "to", "pending", "state to reopen into (pending, in_progress)")
}
