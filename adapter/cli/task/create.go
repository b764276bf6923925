package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/commands"
)

var (
	createType     string
	createCategory string
	createHours    float64
	createHighFreq bool
	createOvercome bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new task",
	Long: `Create a new task with a name and optional properties.

Examples:
  tempora task create "Linear algebra"
  tempora task create "Linear algebra" -t study -H 5
  tempora task create "Gym" -t life --category health -H 3
  tempora task create "Flashcards" --high-frequency`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Name:            args[0],
			Type:            createType,
			Category:        createCategory,
			WeeklyHours:     createHours,
			IsHighFrequency: createHighFreq,
			IsOvercome:      createOvercome,
		}

		ctx := cmd.Context()
		result, err := app.CreateTaskHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		app.Drain(ctx)

		fmt.Printf("Task created: %s\n", result.TaskID)
		fmt.Printf("  name: %s\n", args[0])
		fmt.Printf("  type: %s\n", createType)
		if createHours > 0 {
			fmt.Printf("  weekly hours: %.1f\n", createHours)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", "study", "task type (study, life, work, play)")
	createCmd.Flags().StringVar(&createCategory, "category", "", "free-form category label")
	createCmd.Flags().Float64VarP(&createHours, "hours", "H", 0, "planned weekly hours")
	createCmd.Flags().BoolVar(&createHighFreq, "high-frequency", false, "mark as high-frequency")
	createCmd.Flags().BoolVar(&createOvercome, "overcome", false, "mark as something to overcome")
}
