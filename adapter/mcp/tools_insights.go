package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application/subscribers"
)

type activityInput struct {
	Limit int `json:"limit,omitempty"`
}

func registerInsightsTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("insights.generate").
		Description("Ask the text generator for risks and next steps across categories and tasks").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			return map[string]string{"insights": app.Container.Insights.Insights(ctx)}, nil
		})

	srv.Tool("insights.weekly_report").
		Description("Generate a weekly status report for the whole event").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			return map[string]string{"report": app.Container.Insights.WeeklyReport(ctx)}, nil
		})

	srv.Tool("activity.recent").
		Description("List recent task changes made through this server, newest first").
		Handler(func(ctx context.Context, input activityInput) ([]subscribers.Activity, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			limit := input.Limit
			if limit <= 0 {
				limit = 20
			}
			return app.Container.ActivityFeed.Recent(limit), nil
		})

	return nil
}
