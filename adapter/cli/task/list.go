package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var (
	listCategory string
	listStatus   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks ordered by due date.

Examples:
  eventboard task list
  eventboard task list --category cat-001
  eventboard task list --status blocked`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var status domain.Status
		if listStatus != "" {
			if status, err = domain.ParseStatus(listStatus); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		shown := 0
		for _, t := range app.Container.Coordinator.Tasks(listCategory) {
			if status != "" && t.Status != status {
				continue
			}
			shown++
			fmt.Fprintf(out, "%-36s  %-30s %s  %s  due %s\n",
				t.ID, t.Title, cli.ProgressBar(t.Progress), cli.StatusLabel(t.Status), cli.FormatDate(t.DueDate))
			if cli.Verbose() {
				if u, ok := t.LatestUpdate(); ok {
					fmt.Fprintf(out, "%38s%s\n", "", cli.MutedStyle.Render(u.Message+" by "+u.User))
				}
			}
		}

		if shown == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}
		fmt.Fprintf(out, "\n%d task(s)\n", shown)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only tasks of this category")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only tasks with this status")
}
