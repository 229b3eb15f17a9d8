package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application/subscribers"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/eventboard/pkg/config"
)

// ErrWatchNeedsBroker is returned by activity watch without RabbitMQ.
var ErrWatchNeedsBroker = errors.New("activity watch needs EVENT_BUS=rabbitmq")

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show task activity",
}

var activityRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List task changes made by this process",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		entries := app.Container.ActivityFeed.Recent(activityLimit)
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No activity yet.")
			return nil
		}
		for _, a := range entries {
			printActivity(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

var activityWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow task changes from every client through RabbitMQ",
	Long: `Bind a temporary queue to the dashboard exchange and print each task
change as it is published, until interrupted.

Examples:
  EVENT_BUS=rabbitmq eventboard activity watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		cfg := app.Container.Config
		if cfg.EventBus != config.EventBusRabbitMQ {
			return ErrWatchNeedsBroker
		}

		feed := subscribers.NewActivityFeed(activityLimit, app.Container.Logger)
		out := cmd.OutOrStdout()
		feed.OnActivity(func(a subscribers.Activity) { printActivity(out, a) })

		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:    cfg.RabbitMQURL,
			Logger: app.Container.Logger,
		}, nil)
		if err != nil {
			return err
		}
		defer consumer.Close()
		consumer.RegisterConsumer(feed)

		fmt.Fprintln(out, MutedStyle.Render("Watching task activity, press Ctrl+C to stop."))
		if err := consumer.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func printActivity(w io.Writer, a subscribers.Activity) {
	fmt.Fprintf(w, "%s  %-14s %s\n", a.OccurredAt.Local().Format("2006-01-02 15:04:05"), a.Actor, a.Summary)
}

func init() {
	activityCmd.PersistentFlags().IntVarP(&activityLimit, "limit", "n", 20, "number of entries to keep")
	activityCmd.AddCommand(activityRecentCmd)
	activityCmd.AddCommand(activityWatchCmd)
	rootCmd.AddCommand(activityCmd)
}
