package slot

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/schedule/application/commands"
)

var moodCmd = &cobra.Command{
	Use:   "mood <slot> <mood>",
	Short: "Record how a slot went",
	Long: `Record the mood for a completed slot: happy, focused or tired.

Examples:
  tempora slot mood 3 focused
  tempora slot mood 3 tired --day 2026-03-02`,
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

		mood := strings.ToLower(args[1])
		if err := app.SetSlotMoodHandler.Handle(ctx, commands.SetSlotMoodCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
			Mood:   mood,
		}); err != nil {
			return fmt.Errorf("failed to set mood: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Mood recorded: %s\n", mood)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <slot> <text>",
	Short: "Attach a note to a slot",
	Long: `Attach a short note to a slot. An empty text clears the note.

Examples:
  tempora slot note 3 "Finished the proofs early"
  tempora slot note 3 ""`,
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

		if err := app.SetSlotNoteHandler.Handle(ctx, commands.SetSlotNoteCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
			Text:   args[1],
		}); err != nil {
			return fmt.Errorf("failed to set note: %w", err)
		}
		app.Drain(ctx)

		fmt.Println("Note saved.")
		return nil
	},
}
