package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

type categoryListInput struct {
	Phase string `json:"phase,omitempty"`
}

type categoryIDInput struct {
	CategoryID string `json:"category_id" jsonschema:"required"`
}

// CategoryDetail is a category with its tasks.
type CategoryDetail struct {
	Category domain.Category `json:"category"`
	Tasks    []domain.Task   `json:"tasks"`
}

func registerDashboardTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("dashboard.summary").
		Description("Get the overall event progress, the progress of each phase and every category's derived progress and status").
		Handler(func(ctx context.Context, input struct{}) (*application.DashboardState, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			state := app.Container.Coordinator.DerivedState()
			return &state, nil
		})

	srv.Tool("category.list").
		Description("List categories with derived progress, optionally for one phase (pre-event, during-event, post-event)").
		Handler(categoryListHandler(app))

	srv.Tool("category.get").
		Description("Get one category with its tasks").
		Handler(func(ctx context.Context, input categoryIDInput) (*CategoryDetail, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			id, err := requireID("category_id", input.CategoryID)
			if err != nil {
				return nil, err
			}
			category, err := app.Container.Coordinator.Category(id)
			if err != nil {
				return nil, err
			}
			return &CategoryDetail{
				Category: category,
				Tasks:    app.Container.Coordinator.Tasks(id),
			}, nil
		})

	return nil
}

func categoryListHandler(app *cli.App) func(context.Context, categoryListInput) ([]domain.Category, error) {
	return func(ctx context.Context, input categoryListInput) ([]domain.Category, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}
		categories := app.Container.Coordinator.Categories()
		if input.Phase == "" {
			return categories, nil
		}

		phase, err := domain.ParsePhase(input.Phase)
		if err != nil {
			return nil, err
		}
		filtered := make([]domain.Category, 0, len(categories))
		for _, c := range categories {
			if c.Phase == phase {
				filtered = append(filtered, c)
			}
		}
		return filtered, nil
	}
}
