package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task and its update history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		t, err := app.Container.Coordinator.Task(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printTask(out, t)
		if t.Description != "" {
			fmt.Fprintf(out, "\n  %s\n", t.Description)
		}
		fmt.Fprintf(out, "\n  %s\n", cli.HeaderStyle.Render("History"))
		if len(t.Updates) == 0 {
			fmt.Fprintln(out, "    No updates yet.")
		}
		for _, u := range t.Updates {
			fmt.Fprintf(out, "    %s  %-14s %s\n", u.Timestamp.Local().Format("2006-01-02 15:04"), u.User, u.Message)
		}
		return nil
	},
}
