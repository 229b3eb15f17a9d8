package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show persistence and runtime counters",
	Long: `Display what the write-behind queue has done in this process and
the counters collected so far. Writes run in the background, so a
failed write shows up here and in the log rather than as a command error.

Examples:
  eventboard stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		writes := app.Container.Coordinator.WriteStats()
		fmt.Fprintln(out, HeaderStyle.Render("Writes"))
		fmt.Fprintf(out, "  pending %d | succeeded %d | failed %d | dropped %d\n",
			writes.Pending, writes.Succeeded, writes.Failed, writes.Dropped)

		fmt.Fprintln(out, HeaderStyle.Render("Data sources"))
		for _, name := range slices.Sorted(maps.Keys(app.Container.Hydration.Sources)) {
			fmt.Fprintf(out, "  %-10s %s\n", name, app.Container.Hydration.Sources[name])
		}

		snapshot := app.Container.Metrics.Snapshot()
		if len(snapshot) == 0 {
			return nil
		}
		fmt.Fprintln(out, HeaderStyle.Render("Counters"))
		width := 0
		for k := range snapshot {
			width = max(width, len(k))
		}
		for _, k := range slices.Sorted(maps.Keys(snapshot)) {
			fmt.Fprintf(out, "  %s%s %g\n", k, strings.Repeat(" ", width-len(k)), snapshot[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
