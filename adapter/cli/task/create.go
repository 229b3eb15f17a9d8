package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var (
	category    string
	description string
	assignees   string
	dueDate     string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a task in a category",
	Long: `Create a not-started task in an existing category.

A blank title becomes "New Task", no assignees assigns you, and no due
date means today.

Examples:
  eventboard task create "Book the venue" --category cat-001
  eventboard task create "Print badges" -c cat-002 --due 2026-11-01 --assign "Jon Reyes,Mira Chen"`,
	Aliases: []string{"add", "new"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}

		due, err := parseDueDate(dueDate)
		if err != nil {
			return err
		}
		fields := domain.TaskFields{
			Description: description,
			AssignedTo:  parseAssignees(assignees),
			DueDate:     due,
		}
		if len(args) > 0 {
			fields.Title = args[0]
		}

		t, err := app.Container.Coordinator.CreateTask(cmd.Context(), actor, category, fields)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Task created!")
		printTask(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&category, "category", "c", "", "category id (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	createCmd.Flags().StringVarP(&assignees, "assign", "a", "", "comma-separated assignee names")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	_ = createCmd.MarkFlagRequired("category")
}
