package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

// ErrUnhealthy is returned when a critical dependency check fails.
var ErrUnhealthy = errors.New("unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database and optional services",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		health := app.Container.Health.Check(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", health.Status)
		for _, c := range health.Checks {
			line := fmt.Sprintf("  %-10s %-10s %s", c.Component, c.Status, c.Duration.Round(1000))
			if c.Message != "" {
				line += "  " + c.Message
			}
			fmt.Fprintln(out, line)
		}

		if health.Status == observability.HealthStatusUnhealthy {
			return ErrUnhealthy
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
