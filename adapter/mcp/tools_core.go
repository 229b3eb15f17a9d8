package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

// StatsOutput reports the write-behind queue and runtime counters.
type StatsOutput struct {
	Writes   application.WriteStats                 `json:"writes"`
	Sources  map[string]application.HydrationSource `json:"sources"`
	Counters map[string]float64                     `json:"counters"`
}

func registerCoreTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("cli.health").
		Description("Check the database and optional services").
		Handler(func(ctx context.Context, input struct{}) (observability.OverallHealth, error) {
			if err := requireContainer(app); err != nil {
				return observability.OverallHealth{}, err
			}
			return app.Container.Health.Check(ctx), nil
		})

	srv.Tool("cli.version").
		Description("Show the eventboard version").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version": cli.Version,
				"commit":  cli.Commit,
				"built":   cli.BuildDate,
			}, nil
		})

	srv.Tool("cli.stats").
		Description("Show persistence queue statistics, data sources and counters").
		Handler(statsHandler(app))

	return nil
}

func statsHandler(app *cli.App) func(context.Context, struct{}) (*StatsOutput, error) {
	return func(ctx context.Context, input struct{}) (*StatsOutput, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}
		return &StatsOutput{
			Writes:   app.Container.Coordinator.WriteStats(),
			Sources:  app.Container.Hydration.Sources,
			Counters: app.Container.Metrics.Snapshot(),
		}, nil
	}
}
