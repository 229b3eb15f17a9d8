package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var categoryPhase string

var categoryCmd = &cobra.Command{
	Use:     "category",
	Short:   "Inspect categories",
	Aliases: []string{"categories", "cat"},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their derived progress",
	Long: `List every category. Progress and status are derived from the
category's tasks; a category without tasks shows its initial values.

Examples:
  eventboard category list
  eventboard category list --phase during-event`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		var phase domain.Phase
		if categoryPhase != "" {
			if phase, err = domain.ParsePhase(categoryPhase); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for _, c := range app.Container.Coordinator.Categories() {
			if phase != "" && c.Phase != phase {
				continue
			}
			fmt.Fprintf(out, "%s  %s\n", HeaderStyle.Render(c.Name), MutedStyle.Render(c.ID))
			fmt.Fprintf(out, "  %s  %s\n", ProgressBar(c.Progress), StatusLabel(c.Status))
			fmt.Fprintf(out, "  phase %s, priority %s, due %s\n", c.Phase, PriorityLabel(c.Priority), FormatDate(c.DueDate))
			if len(c.ResponsiblePersons) > 0 {
				fmt.Fprintf(out, "  responsible: %s\n", strings.Join(c.ResponsiblePersons, ", "))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	categoryListCmd.Flags().StringVar(&categoryPhase, "phase", "", "only list categories of this phase")
	categoryCmd.AddCommand(categoryListCmd)
	rootCmd.AddCommand(categoryCmd)
}
