package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task and its subtasks",
	Long: `Delete a task. Subtasks go with it, and any slots still bound to
the task are released.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		ctx := cmd.Context()
		if err := app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
		}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Task deleted: %s\n", taskID)
		return nil
	},
}
