package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

var progressCmd = &cobra.Command{
	Use:   "progress <task-id>",
	Short: "Advance a task by 10%",
	Long: `Record a quick progress update: progress goes up by 10 points, capped
at 100. The task becomes in-progress, or completed when it reaches 100.

Examples:
  eventboard task progress 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"bump"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}

		t, err := app.Container.Coordinator.QuickProgressUpdate(cmd.Context(), actor, args[0])
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		if u, ok := t.LatestUpdate(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), u.Message)
		}
		printTask(cmd.OutOrStdout(), t)
		return nil
	},
}
