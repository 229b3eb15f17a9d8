package task

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, progress, edit and delete the tasks of each category.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(progressCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
}

func printTask(w io.Writer, t domain.Task) {
	fmt.Fprintf(w, "%s  %s\n", cli.HeaderStyle.Render(t.Title), cli.MutedStyle.Render(t.ID))
	fmt.Fprintf(w, "  %s  %s\n", cli.ProgressBar(t.Progress), cli.StatusLabel(t.Status))
	fmt.Fprintf(w, "  category %s, due %s\n", t.CategoryID, cli.FormatDate(t.DueDate))
	if len(t.AssignedTo) > 0 {
		fmt.Fprintf(w, "  assigned: %s\n", strings.Join(t.AssignedTo, ", "))
	}
}

func parseAssignees(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date format, use YYYY-MM-DD: %w", err)
	}
	return &d, nil
}
