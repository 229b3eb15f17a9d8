package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

type taskCreateInput struct {
	CategoryID  string   `json:"category_id" jsonschema:"required"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	AssignedTo  []string `json:"assigned_to,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

type taskListInput struct {
	CategoryID string `json:"category_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskStatusInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Status string `json:"status" jsonschema:"required"`
}

type taskEditInput struct {
	TaskID      string   `json:"task_id" jsonschema:"required"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	AssignedTo  []string `json:"assigned_to,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("task.create").
		Description("Create a not-started task in a category. A blank title becomes \"New Task\"; no assignees assigns the signed-in user; no due date means today").
		Handler(taskCreateHandler(app))

	srv.Tool("task.list").
		Description("List tasks ordered by due date, optionally by category and status").
		Handler(taskListHandler(app))

	srv.Tool("task.get").
		Description("Get a task with its update history, newest first").
		Handler(func(ctx context.Context, input taskIDInput) (*domain.Task, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			id, err := requireID("task_id", input.TaskID)
			if err != nil {
				return nil, err
			}
			t, err := app.Container.Coordinator.Task(id)
			if err != nil {
				return nil, err
			}
			return &t, nil
		})

	srv.Tool("task.progress").
		Description("Quick progress update: add 10 points (capped at 100). The task becomes in-progress, or completed at 100").
		Handler(taskProgressHandler(app))

	srv.Tool("task.status").
		Description("Set a task's status (not-started, in-progress, completed, blocked). Completing sets progress to 100").
		Handler(func(ctx context.Context, input taskStatusInput) (*domain.Task, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			status, err := domain.ParseStatus(input.Status)
			if err != nil {
				return nil, err
			}
			t, err := app.Container.Coordinator.ChangeTaskStatus(ctx, user, input.TaskID, status)
			if err != nil {
				return nil, err
			}
			return &t, nil
		})

	srv.Tool("task.edit").
		Description("Change a task's title, description, assignees or due date. Omitted fields keep their value").
		Handler(taskEditHandler(app))

	srv.Tool("task.delete").
		Description("Delete a task permanently (super-admin only)").
		Handler(func(ctx context.Context, input taskIDInput) (map[string]any, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			if err := app.Container.Coordinator.DeleteTask(ctx, user, input.TaskID); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": input.TaskID, "deleted": true}, nil
		})

	return nil
}

func taskCreateHandler(app *cli.App) func(context.Context, taskCreateInput) (*domain.Task, error) {
	return func(ctx context.Context, input taskCreateInput) (*domain.Task, error) {
		user, err := actor(app)
		if err != nil {
			return nil, err
		}
		due, err := parseOptionalDate(input.DueDate)
		if err != nil {
			return nil, err
		}
		t, err := app.Container.Coordinator.CreateTask(ctx, user, input.CategoryID, domain.TaskFields{
			Title:       input.Title,
			Description: input.Description,
			AssignedTo:  input.AssignedTo,
			DueDate:     due,
		})
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

func taskListHandler(app *cli.App) func(context.Context, taskListInput) ([]domain.Task, error) {
	return func(ctx context.Context, input taskListInput) ([]domain.Task, error) {
		if err := requireContainer(app); err != nil {
			return nil, err
		}
		tasks := app.Container.Coordinator.Tasks(input.CategoryID)
		if input.Status == "" {
			return tasks, nil
		}

		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filtered := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		return filtered, nil
	}
}

func taskProgressHandler(app *cli.App) func(context.Context, taskIDInput) (*domain.Task, error) {
	return func(ctx context.Context, input taskIDInput) (*domain.Task, error) {
		user, err := actor(app)
		if err != nil {
			return nil, err
		}
		t, err := app.Container.Coordinator.QuickProgressUpdate(ctx, user, input.TaskID)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

func taskEditHandler(app *cli.App) func(context.Context, taskEditInput) (*domain.Task, error) {
	return func(ctx context.Context, input taskEditInput) (*domain.Task, error) {
		user, err := actor(app)
		if err != nil {
			return nil, err
		}
		current, err := app.Container.Coordinator.Task(input.TaskID)
		if err != nil {
			return nil, err
		}

		due := current.DueDate
		fields := domain.TaskFields{
			Title:       current.Title,
			Description: current.Description,
			AssignedTo:  current.AssignedTo,
			DueDate:     &due,
		}
		if input.Title != nil {
			fields.Title = *input.Title
		}
		if input.Description != nil {
			fields.Description = *input.Description
		}
		if input.AssignedTo != nil {
			fields.AssignedTo = input.AssignedTo
		}
		if input.DueDate != "" {
			if fields.DueDate, err = parseOptionalDate(input.DueDate); err != nil {
				return nil, err
			}
		}

		t, err := app.Container.Coordinator.EditTask(ctx, user, current.ID, fields)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}
