package slot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temporahq/tempora/adapter/cli"
	"github.com/temporahq/tempora/internal/schedule/application/commands"
	"github.com/temporahq/tempora/internal/schedule/application/queries"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

var dayGenerate bool

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the day's slot grid",
	Long: `Show the day's grid with each slot's status, binding, mood and note.

Examples:
  tempora slot day
  tempora slot day --day 2026-03-02
  tempora slot day --generate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		day, err := cli.ParseDay(slotDay)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if dayGenerate {
			_, err := app.EnsureDayHandler.Handle(ctx, commands.EnsureDayCommand{
				UserID:   app.CurrentUserID,
				Day:      day,
				Template: app.SlotTemplate,
			})
			if err != nil {
				return fmt.Errorf("failed to generate day: %w", err)
			}
			app.Drain(ctx)
		}

		schedule, err := app.GetDayScheduleHandler.Handle(ctx, queries.GetDayScheduleQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if errors.Is(err, scheduleDomain.ErrScheduleNotFound) {
			fmt.Printf("No grid for %s yet. Generate one with:\n", day.Format("2006-01-02"))
			fmt.Println("  tempora slot day --generate")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load day schedule: %w", err)
		}

		header := schedule.Day.Format("Monday, 2006-01-02")
		if schedule.Archived {
			header += " (archived)"
		}
		fmt.Println(header)
		fmt.Println(strings.Repeat("-", 72))

		for _, s := range schedule.Slots {
			line := fmt.Sprintf("[%2d] %s  %-11s", s.Position, s.Label, s.Status)
			if s.TaskID != nil {
				line += "  task " + s.TaskID.String()[:8]
				if s.SubtaskID != nil {
					line += "/" + s.SubtaskID.String()[:8]
				}
			}
			if s.Mood != nil {
				line += "  " + *s.Mood
			}
			if s.IsAIRecommended {
				line += "  *recommended*"
			}
			fmt.Println(line)
			if s.Note != "" {
				fmt.Printf("      note: %s\n", s.Note)
			}
			if s.AITip != nil {
				fmt.Printf("      tip: %s\n", *s.AITip)
			}
		}
		return nil
	},
}

func init() {
	dayCmd.Flags().BoolVar(&dayGenerate, "generate", false, "generate the grid from the template if missing")
}
