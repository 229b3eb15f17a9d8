package programme

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

var photoCaption string

// GalleryCmd is the photo gallery command group
var GalleryCmd = &cobra.Command{
	Use:     "gallery",
	Short:   "Manage the photo gallery",
	Aliases: []string{"photos"},
}

var galleryListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List photos, newest first",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		photos := app.Container.Coordinator.Gallery()
		if len(photos) == 0 {
			fmt.Fprintln(out, "The gallery is empty.")
			return nil
		}
		for _, p := range photos {
			fmt.Fprintf(out, "%s  %s\n", p.URL, cli.MutedStyle.Render(p.ID))
			if p.Caption != "" {
				fmt.Fprintf(out, "  %s\n", p.Caption)
			}
			fmt.Fprintf(out, "  by %s on %s\n", p.UploadedBy, p.UploadedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var galleryAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a photo by URL",
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

		p, err := app.Container.Coordinator.AddPhoto(cmd.Context(), actor, args[0], photoCaption)
		if err != nil {
			return fmt.Errorf("failed to add photo: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Photo added (%s)\n", p.ID)
		return nil
	},
}

var galleryDeleteCmd = &cobra.Command{
	Use:     "delete <photo-id>",
	Short:   "Remove a photo (super-admin only)",
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
		if err := app.Container.Coordinator.DeletePhoto(cmd.Context(), actor, args[0]); err != nil {
			return fmt.Errorf("failed to delete photo: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Photo %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	galleryAddCmd.Flags().StringVar(&photoCaption, "caption", "", "photo caption")

	GalleryCmd.AddCommand(galleryListCmd)
	GalleryCmd.AddCommand(galleryAddCmd)
	GalleryCmd.AddCommand(galleryDeleteCmd)
}
