package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show one task with its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: taskID})
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		fmt.Printf("%s%s\n", t.Name, flagMarkers(t.IsHighFrequency, t.IsOvercome))
		fmt.Printf("  id: %s\n", t.ID)
		fmt.Printf("  type: %s\n", t.Type)
		if t.Category != "" {
			fmt.Printf("  category: %s\n", t.Category)
		}
		fmt.Printf("  weekly hours: %.1f\n", t.WeeklyHours)
		fmt.Printf("  effective hours: %.1f\n", t.EffectiveHours)
		fmt.Printf("  created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))

		if len(t.Subtasks) > 0 {
			fmt.Printf("  subtasks (%d):\n", len(t.Subtasks))
			for _, st := range t.Subtasks {
				fmt.Printf("    %s  %6.1fh  %s%s\n",
					st.ID, st.Hours, st.Name, flagMarkers(st.IsHighFrequency, st.IsOvercome))
			}
		}
		return nil
	},
}
