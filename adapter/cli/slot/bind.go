package slot

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/schedule/application/commands"
)

var bindSubtask string

var bindCmd = &cobra.Command{
	Use:   "bind <slot> <task-id>",
	Short: "Bind a task to a slot",
	Long: `Bind a task (and optionally one of its subtasks) to an empty slot.

Examples:
  tempora slot bind 3 6b1f...
  tempora slot bind 3 6b1f... --subtask 9c2e...
  tempora slot bind 3 6b1f... --day 2026-03-02`,
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
		taskID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		bindCommand := commands.BindSlotCommand{
			UserID: app.CurrentUserID,
			SlotID: slotID,
			TaskID: taskID,
		}
		if bindSubtask != "" {
			subtaskID, err := uuid.Parse(bindSubtask)
			if err != nil {
				return fmt.Errorf("invalid subtask id: %w", err)
			}
			bindCommand.SubtaskID = &subtaskID
		}

		if err := app.BindSlotHandler.Handle(ctx, bindCommand); err != nil {
			return fmt.Errorf("failed to bind slot: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Slot %s bound to task %s\n", slotID, taskID)
		return nil
	},
}

func init() {
	bindCmd.Flags().StringVar(&bindSubtask, "subtask", "", "subtask id to bind alongside the task")
}
