package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var (
	editTitle       string
	editDescription string
	editAssignees   string
	editDueDate     string
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's title, description, assignees or due date",
	Long: `Change the descriptive fields of a task. Fields whose flag is not
given keep their value. Progress, status and history are not touched.

Examples:
  eventboard task edit 550e8400-e29b-41d4-a716-446655440000 --title "Book the main hall"
  eventboard task edit 550e8400-e29b-41d4-a716-446655440000 --due 2026-11-20`,
	Aliases: []string{"update"},
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

		current, err := app.Container.Coordinator.Task(args[0])
		if err != nil {
			return err
		}

		due := current.DueDate
		fields := domain.TaskFields{
			Title:       current.Title,
			Description: current.Description,
			AssignedTo:  current.AssignedTo,
			DueDate:     &due,
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			fields.Title = editTitle
		}
		if flags.Changed("description") {
			fields.Description = editDescription
		}
		if flags.Changed("assign") {
			fields.AssignedTo = parseAssignees(editAssignees)
		}
		if flags.Changed("due") {
			if fields.DueDate, err = parseDueDate(editDueDate); err != nil {
				return err
			}
		}

		t, err := app.Container.Coordinator.EditTask(cmd.Context(), actor, current.ID, fields)
		if err != nil {
			return fmt.Errorf("failed to edit task: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Task updated!")
		printTask(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description")
	editCmd.Flags().StringVarP(&editAssignees, "assign", "a", "", "comma-separated assignee names")
	editCmd.Flags().StringVar(&editDueDate, "due", "", "new due date (YYYY-MM-DD)")
}
