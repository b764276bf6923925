package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/commands"
)

var (
	subtaskHours    float64
	subtaskHighFreq bool
	subtaskOvercome bool
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask <task-id> <name>",
	Short: "Add a subtask to a task",
	Long: `Add a subtask. Once a task has subtasks, their hours replace the
task's own weekly hours in every report.

Examples:
  tempora task subtask 6b1f... "Chapter one" -H 2
  tempora task subtask 6b1f... "Exercises" -H 3 --high-frequency`,
	Args: cobra.ExactArgs(2),
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
		result, err := app.AddSubtaskHandler.Handle(ctx, commands.AddSubtaskCommand{
			UserID:          app.CurrentUserID,
			TaskID:          taskID,
			Name:            args[1],
			Hours:           subtaskHours,
			IsHighFrequency: subtaskHighFreq,
			IsOvercome:      subtaskOvercome,
		})
		if err != nil {
			return fmt.Errorf("failed to add subtask: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Subtask added: %s\n", result.SubtaskID)
		return nil
	},
}

func init() {
	subtaskCmd.Flags().Float64VarP(&subtaskHours, "hours", "H", 0, "planned hours for the subtask")
	subtaskCmd.Flags().BoolVar(&subtaskHighFreq, "high-frequency", false, "mark as high-frequency")
	subtaskCmd.Flags().BoolVar(&subtaskOvercome, "overcome", false, "mark as something to overcome")
}
