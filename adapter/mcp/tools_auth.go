package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

type loginInput struct {
	Email      string `json:"email" jsonschema:"required"`
	AccessCode string `json:"access_code" jsonschema:"required"`
}

type whoamiOutput struct {
	SignedIn bool         `json:"signed_in"`
	User     *domain.User `json:"user,omitempty"`
}

func registerAuthTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("auth.login").
		Description("Sign in with an email and access code; later tools act as this user").
		Handler(loginHandler(app))

	srv.Tool("auth.logout").
		Description("Forget the signed-in user").
		Handler(func(ctx context.Context, input struct{}) (map[string]bool, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			if err := app.Container.Session.Logout(ctx); err != nil {
				return nil, err
			}
			return map[string]bool{"signed_out": true}, nil
		})

	srv.Tool("auth.whoami").
		Description("Show the signed-in user").
		Handler(whoamiHandler(app))

	return nil
}

func loginHandler(app *cli.App) func(context.Context, loginInput) (*domain.User, error) {
	return func(ctx context.Context, input loginInput) (*domain.User, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}
		user, err := app.Container.Session.Login(ctx, app.Container.Coordinator, input.Email, input.AccessCode)
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
}

func whoamiHandler(app *cli.App) func(context.Context, struct{}) (*whoamiOutput, error) {
	return func(ctx context.Context, input struct{}) (*whoamiOutput, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}
		user, ok := app.Container.Session.Current()
		if !ok {
			return &whoamiOutput{}, nil
		}
		return &whoamiOutput{SignedIn: true, User: &user}, nil
	}
}
