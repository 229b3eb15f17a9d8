package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrExportDisabled is returned when no CalDAV server is configured.
var ErrExportDisabled = errors.New("schedule export is not configured: set CALDAV_URL and CALDAV_CALENDAR_PATH")

var exportScheduleCmd = &cobra.Command{
	Use:   "export-schedule",
	Short: "Publish the schedule to the CalDAV calendar",
	Long: `Create or update one calendar event per schedule session on the
configured CalDAV server. Events this tool created for sessions that no
longer exist are removed.

Examples:
  eventboard export-schedule`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Container.Exporter == nil {
			return ErrExportDisabled
		}

		result, err := app.Container.Coordinator.ExportSchedule(cmd.Context(), app.Container.Exporter)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schedule exported: %d created, %d updated, %d deleted, %d failed\n",
			result.Created, result.Updated, result.Deleted, result.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportScheduleCmd)
}
