package slot

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
)

// Cmd is the slot command group.
var Cmd = &cobra.Command{
	Use:   "slot",
	Short: "Work the day's time-slot grid",
	Long: `Inspect the day's grid and move slots through their lifecycle:
bind a task, start, complete, reopen, and record mood and notes.

Slots are addressed by their position in the day (as shown by
"tempora slot day") or by their full id.`,
}

// slotDay is the --day flag shared by the slot subcommands.
var slotDay string

func init() {
	Cmd.PersistentFlags().StringVar(&slotDay, "day", "", "day of the slot (YYYY-MM-DD, default today)")

	Cmd.AddCommand(dayCmd)
	Cmd.AddCommand(bindCmd)
	Cmd.AddCommand(unbindCmd)
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(reopenCmd)
	Cmd.AddCommand(moodCmd)
	Cmd.AddCommand(noteCmd)
	Cmd.AddCommand(tipCmd)
}

// resolveSlot turns a position number or a slot id into a slot id using
// the group's --day flag.
func resolveSlot(ctx context.Context, app *cli.App, arg string) (uuid.UUID, error) {
	return cli.ResolveSlot(ctx, app, slotDay, arg)
}
