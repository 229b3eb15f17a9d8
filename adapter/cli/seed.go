package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write seed data into the database",
	Long: `Upsert the built-in demonstration data, or the data in a YAML file,
into the database and reload the dashboard. Records with the same IDs
are replaced; other records are left alone. Requires a super-admin.

Examples:
  eventboard seed
  eventboard seed --file ./event.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		actor, err := app.Actor()
		if err != nil {
			return err
		}
		if err := domain.RequireSuperAdmin(actor); err != nil {
			return err
		}

		var ds *domain.Dataset
		if seedFile != "" {
			loaded, err := seed.LoadFile(seedFile)
			if err != nil {
				return err
			}
			ds = &loaded
		}

		counts, err := app.Container.SeedDatabase(cmd.Context(), ds)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Seed data written.")
		for _, name := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(out, "  %-10s %d\n", name, counts[name])
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (defaults to the built-in data)")
	rootCmd.AddCommand(seedCmd)
}
