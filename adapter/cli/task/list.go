package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/planning/application/queries"
)

var listType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in insertion order, optionally filtered by type.

Examples:
  tempora task list
  tempora task list --type study`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID: app.CurrentUserID,
			Type:   listType,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("Tasks (%d):\n", len(tasks))
		fmt.Println(strings.Repeat("-", 72))
		for _, t := range tasks {
			fmt.Printf("%s  %-6s %6.1fh  %s%s\n",
				t.ID, t.Type, t.EffectiveHours, t.Name, flagMarkers(t.IsHighFrequency, t.IsOvercome))
			for _, st := range t.Subtasks {
				fmt.Printf("    %s  %6.1fh  %s%s\n",
					st.ID, st.Hours, st.Name, flagMarkers(st.IsHighFrequency, st.IsOvercome))
			}
		}
		return nil
	},
}

func flagMarkers(highFreq, overcome bool) string {
	var b strings.Builder
	if highFreq {
		b.WriteString(" [HF]")
	}
	if overcome {
		b.WriteString(" [OC]")
	}
	return b.String()
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by type (study, life, work, play)")
}
