// Package programme holds the schedule, guest list and gallery commands.
package programme

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
)

// sessionTimeLayout is the input format for session start and end times.
const sessionTimeLayout = "2006-01-02 15:04"

var (
	sessionSpeaker     string
	sessionLocation    string
	sessionDescription string
	sessionStart       string
	sessionEnd         string
)

// ScheduleCmd is the schedule command group
var ScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the event schedule",
}

var scheduleListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the schedule in start order",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sessions := app.Container.Coordinator.Schedule()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions scheduled.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(out, "%s - %s  %s\n",
				s.StartsAt.Local().Format("Mon 02 Jan 15:04"),
				s.EndsAt.Local().Format("15:04"),
				cli.HeaderStyle.Render(s.Title))
			detail := s.Location
			if s.Speaker != "" {
				detail = s.Speaker + ", " + detail
			}
			fmt.Fprintf(out, "  %s  %s\n", detail, cli.MutedStyle.Render(s.ID))
		}
		return nil
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a session",
	Long: `Add a session to the schedule. Times are local and use the format
"YYYY-MM-DD HH:MM"; the end must be after the start.

Examples:
  eventboard schedule add "Opening keynote" --start "2026-11-14 09:00" --end "2026-11-14 09:45" --speaker "Ayla Morgan"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}

		startsAt, err := parseSessionTime(sessionStart)
		if err != nil {
			return err
		}
		endsAt, err := parseSessionTime(sessionEnd)
		if err != nil {
			return err
		}

		s, err := app.Container.Coordinator.AddSession(cmd.Context(), actor, application.SessionInput{
			Title:       args[0],
			Speaker:     sessionSpeaker,
			Location:    sessionLocation,
			Description: sessionDescription,
			StartsAt:    startsAt,
			EndsAt:      endsAt,
		})
		if err != nil {
			return fmt.Errorf("failed to add session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session added: %s (%s)\n", s.Title, s.ID)
		return nil
	},
}

var scheduleDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Short:   "Remove a session (super-admin only)",
	Aliases: []string{"rm"},
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
		if err := app.Container.Coordinator.DeleteSession(cmd.Context(), actor, args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted.\n", args[0])
		return nil
	},
}

func parseSessionTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sessionTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use %q: %w", s, sessionTimeLayout, err)
	}
	return t, nil
}

func init() {
	scheduleAddCmd.Flags().StringVar(&sessionStart, "start", "", "start time (YYYY-MM-DD HH:MM)")
	scheduleAddCmd.Flags().StringVar(&sessionEnd, "end", "", "end time (YYYY-MM-DD HH:MM)")
	scheduleAddCmd.Flags().StringVar(&sessionSpeaker, "speaker", "", "speaker name")
	scheduleAddCmd.Flags().StringVar(&sessionLocation, "location", "", "room or stage")
	scheduleAddCmd.Flags().StringVarP(&sessionDescription, "description", "d", "", "session description")
	_ = scheduleAddCmd.MarkFlagRequired("start")
	_ = scheduleAddCmd.MarkFlagRequired("end")

	ScheduleCmd.AddCommand(scheduleListCmd)
	ScheduleCmd.AddCommand(scheduleAddCmd)
	ScheduleCmd.AddCommand(scheduleDeleteCmd)
}
