package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
)

// ToolDependencies provides the application the MCP tools act on.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	registrations := []func(*mcp.Server, ToolDependencies) error{
		registerCoreTools,
		registerAuthTools,
		registerDashboardTools,
		registerTaskTools,
		registerProgrammeTools,
		registerInsightsTools,
	}
	for _, register := range registrations {
		if err := register(srv, deps); err != nil {
			return err
		}
	}
	return nil
}
