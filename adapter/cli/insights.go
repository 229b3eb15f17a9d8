package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask the text generator about risks and next steps",
	Long: `Send the current categories and tasks to the configured text
generation service and print its observations. When the service is not
configured or fails, a fixed notice is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), HeaderStyle.Render("Insights"))
		fmt.Fprintln(cmd.OutOrStdout(), app.Container.Insights.Insights(cmd.Context()))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a weekly status report",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), HeaderStyle.Render("Weekly report"))
		fmt.Fprintln(cmd.OutOrStdout(), app.Container.Insights.WeeklyReport(cmd.Context()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(reportCmd)
}
