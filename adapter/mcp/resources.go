package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

// RegisterResources registers MCP resources that expose dashboard data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	resources := []struct {
		uri         string
		name        string
		description string
		read        func(*cli.App) any
	}{
		{
			uri:         "eventboard://dashboard",
			name:        "Dashboard",
			description: "Overall, per-phase and per-category progress",
			read:        func(a *cli.App) any { return a.Container.Coordinator.DerivedState() },
		},
		{
			uri:         "eventboard://categories",
			name:        "Categories",
			description: "Every category with derived progress and status",
			read:        func(a *cli.App) any { return a.Container.Coordinator.Categories() },
		},
		{
			uri:         "eventboard://tasks",
			name:        "Tasks",
			description: "Every task with its update history",
			read:        func(a *cli.App) any { return a.Container.Coordinator.Tasks("") },
		},
		{
			uri:         "eventboard://schedule",
			name:        "Schedule",
			description: "Schedule sessions in start order",
			read:        func(a *cli.App) any { return a.Container.Coordinator.Schedule() },
		},
		{
			uri:         "eventboard://attendees",
			name:        "Guest list",
			description: "Attendees with their RSVP and check-in state",
			read:        func(a *cli.App) any { return a.Container.Coordinator.Attendees() },
		},
		{
			uri:         "eventboard://activity",
			name:        "Recent activity",
			description: "The latest task changes, newest first",
			read:        func(a *cli.App) any { return a.Container.ActivityFeed.Recent(50) },
		},
	}

	for _, r := range resources {
		srv.Resource(r.uri).
			Name(r.name).
			Description(r.description).
			MimeType("application/json").
			Handler(jsonResource(app, r.read))
	}
	return nil
}

func jsonResource(app *cli.App, read func(*cli.App) any) func(context.Context, string, map[string]string) (*mcp.ResourceContent, error) {
	return func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(read(app), "", "  ")
		if err != nil {
			return nil, err
		}

		return &mcp.ResourceContent{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(data),
		}, nil
	}
}
