package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of connected services",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		overall := app.Health.GetOverallHealth(cmd.Context())

		if healthJSON {
			data, err := overall.ToJSON()
			if err != nil {
				return fmt.Errorf("failed to render health report: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Overall: %s\n", overall.Status)
		for name, result := range overall.Checks {
			fmt.Printf("  %-10s %s", name, result.Status)
			if result.Message != "" {
				fmt.Printf("  (%s)", result.Message)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(healthCmd)
}
