package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var (
	dashboardLive  bool
	dashboardPhase string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the event progress dashboard",
	Long: `Display the overall event progress, the progress of each phase and
every category with its derived progress and status.

Examples:
  eventboard dashboard
  eventboard dashboard --phase pre-event
  eventboard dashboard --live`,
	Aliases: []string{"dash", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		var phase domain.Phase
		if dashboardPhase != "" {
			if phase, err = domain.ParsePhase(dashboardPhase); err != nil {
				return err
			}
		}

		if dashboardLive {
			return runLiveDashboard(cmd.Context(), app, phase)
		}

		fmt.Fprintln(cmd.OutOrStdout(), RenderDashboard(app.Container.Coordinator.DerivedState(), phase))
		return nil
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardLive, "live", false, "keep the dashboard open and refresh it")
	dashboardCmd.Flags().StringVar(&dashboardPhase, "phase", "", "only show categories of this phase")
	rootCmd.AddCommand(dashboardCmd)
}

// RenderDashboard renders the derived state. A non-empty phase limits the
// category list to that phase; the summary always covers the whole event.
func RenderDashboard(state application.DashboardState, phase domain.Phase) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(" Event Progress "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Overall  %s\n", ProgressBar(state.OverallProgress))
	fmt.Fprintf(&b, "%s\n\n", MutedStyle.Render(fmt.Sprintf("%d tasks, %d completed, %d blocked",
		state.TaskCount, state.CompletedTasks, state.BlockedTasks)))

	phases := make([]string, 0, len(state.Phases))
	for _, p := range state.Phases {
		phases = append(phases, PanelStyle.Render(fmt.Sprintf("%s\n%s\n%s",
			HeaderStyle.Render(p.Phase.String()),
			ProgressBar(int(p.Progress+0.5)),
			MutedStyle.Render(fmt.Sprintf("weight %.0f%%, %d categories", p.Weight*100, p.Categories)),
		)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, phases...))
	b.WriteString("\n\n")

	b.WriteString(HeaderStyle.Render("Categories"))
	b.WriteString("\n")
	shown := 0
	for _, c := range state.Categories {
		if phase != "" && c.Phase != phase {
			continue
		}
		shown++
		fmt.Fprintf(&b, "  %-8s %-28s %s  %-12s %s  due %s\n",
			c.ID,
			truncate(c.Name, 28),
			ProgressBar(c.Progress),
			StatusLabel(c.Status),
			PriorityLabel(c.Priority),
			FormatDate(c.DueDate),
		)
	}
	if shown == 0 {
		b.WriteString(MutedStyle.Render("  No categories."))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
