package programme

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var (
	attendeeEmail        string
	attendeeOrganization string
)

// AttendeeCmd is the guest list command group
var AttendeeCmd = &cobra.Command{
	Use:     "attendee",
	Short:   "Manage the guest list",
	Aliases: []string{"attendees", "guest"},
}

var attendeeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the guest list and attendance",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, a := range app.Container.Coordinator.Attendees() {
			arrived := " "
			if a.CheckedIn {
				arrived = "✓"
			}
			fmt.Fprintf(out, "%s %-24s %-10s %-20s %s\n", arrived, a.Name, a.RSVP, a.Organization, cli.MutedStyle.Render(a.ID))
		}

		s := app.Container.Coordinator.Attendance()
		fmt.Fprintf(out, "\n%d guests: %d confirmed, %d pending, %d declined, %d checked in\n",
			s.Total, s.Confirmed, s.Pending, s.Declined, s.CheckedIn)
		return nil
	},
}

var attendeeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a guest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}

		a, err := app.Container.Coordinator.AddAttendee(cmd.Context(), actor, args[0], attendeeEmail, attendeeOrganization)
		if err != nil {
			return fmt.Errorf("failed to add attendee: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Attendee added: %s (%s)\n", a.Name, a.ID)
		return nil
	},
}

var attendeeRSVPCmd = &cobra.Command{
	Use:   "rsvp <attendee-id> <pending|confirmed|declined>",
	Short: "Record a guest's reply",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}
		rsvp, err := domain.ParseRSVP(args[1])
		if err != nil {
			return err
		}

		a, err := app.Container.Coordinator.SetRSVP(cmd.Context(), actor, args[0], rsvp)
		if err != nil {
			return fmt.Errorf("failed to record rsvp: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.Name, a.RSVP)
		return nil
	},
}

var attendeeCheckInCmd = &cobra.Command{
	Use:     "checkin <attendee-id>",
	Short:   "Mark a guest as arrived",
	Aliases: []string{"check-in"},
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

		a, err := app.Container.Coordinator.CheckInAttendee(cmd.Context(), actor, args[0])
		if err != nil {
			return fmt.Errorf("failed to check in: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s checked in.\n", a.Name)
		return nil
	},
}

var attendeeDeleteCmd = &cobra.Command{
	Use:     "delete <attendee-id>",
	Short:   "Remove a guest (super-admin only)",
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
		if err := app.Container.Coordinator.DeleteAttendee(cmd.Context(), actor, args[0]); err != nil {
			return fmt.Errorf("failed to delete attendee: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Attendee %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	attendeeAddCmd.Flags().StringVar(&attendeeEmail, "email", "", "guest email")
	attendeeAddCmd.Flags().StringVar(&attendeeOrganization, "org", "", "guest organization")

	AttendeeCmd.AddCommand(attendeeListCmd)
	AttendeeCmd.AddCommand(attendeeAddCmd)
	AttendeeCmd.AddCommand(attendeeRSVPCmd)
	AttendeeCmd.AddCommand(attendeeCheckInCmd)
	AttendeeCmd.AddCommand(attendeeDeleteCmd)
}
