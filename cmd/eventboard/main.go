package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/adapter/cli/mcp"
	"github.com/felixgeelhaar/eventboard/adapter/cli/programme"
	"github.com/felixgeelhaar/eventboard/adapter/cli/task"
	"github.com/felixgeelhaar/eventboard/internal/app"
	"github.com/felixgeelhaar/eventboard/pkg/config"
	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.NewLogger(observability.LogConfig{Level: "info"})

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger = observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      observability.LogFormat(cfg.LogFormat),
		ServiceName: "eventboard",
	})
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// Commands report ErrNoDashboard instead of exiting.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close(context.WithoutCancel(ctx))
		cliApp = cli.NewApp(container)
	}

	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(programme.ScheduleCmd)
	cli.AddCommand(programme.AttendeeCmd)
	cli.AddCommand(programme.GalleryCmd)
	cli.AddCommand(mcp.Cmd)

	return cli.Execute(ctx)
}
