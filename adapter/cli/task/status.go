package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Set a task's status",
	Long: `Set the status by hand: not-started, in-progress, completed or blocked.
Completing a task sets its progress to 100; a task at 100 can only be
completed.

Examples:
  eventboard task status 550e8400-e29b-41d4-a716-446655440000 blocked`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}

		status, err := domain.ParseStatus(args[1])
		if err != nil {
			return err
		}

		t, err := app.Container.Coordinator.ChangeTaskStatus(cmd.Context(), actor, args[0], status)
		if err != nil {
			return fmt.Errorf("failed to change status: %w", err)
		}

		printTask(cmd.OutOrStdout(), t)
		return nil
	},
}
