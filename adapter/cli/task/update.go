package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/commands"
)

var (
	updateName     string
	updateType     string
	updateCategory string
	updateHours    float64
	updateHighFreq bool
	updateOvercome bool
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update a task's fields. Only the flags you pass change; everything
else stays as it was.

Examples:
  tempora task update 6b1f... --name "Linear algebra II"
  tempora task update 6b1f... --hours 8
  tempora task update 6b1f... --high-frequency=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		updateCommand := commands.UpdateTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
		}
		if cmd.Flags().Changed("name") {
			updateCommand.Name = &updateName
		}
		if cmd.Flags().Changed("type") {
			updateCommand.Type = &updateType
		}
		if cmd.Flags().Changed("category") {
			updateCommand.Category = &updateCategory
		}
		if cmd.Flags().Changed("hours") {
			updateCommand.WeeklyHours = &updateHours
		}
		if cmd.Flags().Changed("high-frequency") {
			updateCommand.IsHighFrequency = &updateHighFreq
		}
		if cmd.Flags().Changed("overcome") {
			updateCommand.IsOvercome = &updateOvercome
		}

		ctx := cmd.Context()
		if err := app.UpdateTaskHandler.Handle(ctx, updateCommand); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Task updated: %s\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVarP(&updateType, "type", "t", "", "new type (study, life, work, play)")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category label")
	updateCmd.Flags().Float64VarP(&updateHours, "hours", "H", 0, "new planned weekly hours")
	updateCmd.Flags().BoolVar(&updateHighFreq, "high-frequency", false, "set the high-frequency flag")
	updateCmd.Flags().BoolVar(&updateOvercome, "overcome", false, "set the overcome flag")
}
