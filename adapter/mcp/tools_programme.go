package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

type sessionAddInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Speaker     string `json:"speaker,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	StartsAt    string `json:"starts_at" jsonschema:"required"`
	EndsAt      string `json:"ends_at" jsonschema:"required"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"required"`
}

type attendeeAddInput struct {
	Name         string `json:"name" jsonschema:"required"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
}

type rsvpInput struct {
	ID   string `json:"id" jsonschema:"required"`
	RSVP string `json:"rsvp" jsonschema:"required"`
}

type photoAddInput struct {
	URL     string `json:"url" jsonschema:"required"`
	Caption string `json:"caption,omitempty"`
}

// GuestList is the guest list with its attendance summary.
type GuestList struct {
	Attendees []domain.Attendee             `json:"attendees"`
	Summary   application.AttendanceSummary `json:"summary"`
}

func registerProgrammeTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("schedule.list").
		Description("List schedule sessions in start order").
		Handler(func(ctx context.Context, input struct{}) ([]domain.Session, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			return app.Container.Coordinator.Schedule(), nil
		})

	srv.Tool("schedule.add").
		Description("Add a schedule session; times are RFC 3339 and the end must be after the start").
		Handler(sessionAddHandler(app))

	srv.Tool("schedule.delete").
		Description("Remove a schedule session (super-admin only)").
		Handler(deleteHandler(app, func(c context.Context, u domain.User, id string) error {
			return app.Container.Coordinator.DeleteSession(c, u, id)
		}))

	srv.Tool("schedule.export").
		Description("Publish the schedule to the configured CalDAV calendar").
		Handler(func(ctx context.Context, input struct{}) (*application.ExportResult, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			if app.Container.Exporter == nil {
				return nil, cli.ErrExportDisabled
			}
			result, err := app.Container.Coordinator.ExportSchedule(ctx, app.Container.Exporter)
			if err != nil {
				return nil, err
			}
			return &result, nil
		})

	srv.Tool("attendee.list").
		Description("List the guest list with RSVP and check-in counts").
		Handler(func(ctx context.Context, input struct{}) (*GuestList, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			return &GuestList{
				Attendees: app.Container.Coordinator.Attendees(),
				Summary:   app.Container.Coordinator.Attendance(),
			}, nil
		})

	srv.Tool("attendee.add").
		Description("Add a guest with a pending RSVP").
		Handler(func(ctx context.Context, input attendeeAddInput) (*domain.Attendee, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			a, err := app.Container.Coordinator.AddAttendee(ctx, user, input.Name, input.Email, input.Organization)
			if err != nil {
				return nil, err
			}
			return &a, nil
		})

	srv.Tool("attendee.rsvp").
		Description("Record a guest's reply (pending, confirmed, declined)").
		Handler(func(ctx context.Context, input rsvpInput) (*domain.Attendee, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			rsvp, err := domain.ParseRSVP(input.RSVP)
			if err != nil {
				return nil, err
			}
			a, err := app.Container.Coordinator.SetRSVP(ctx, user, input.ID, rsvp)
			if err != nil {
				return nil, err
			}
			return &a, nil
		})

	srv.Tool("attendee.checkin").
		Description("Mark a guest as arrived").
		Handler(func(ctx context.Context, input idInput) (*domain.Attendee, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			a, err := app.Container.Coordinator.CheckInAttendee(ctx, user, input.ID)
			if err != nil {
				return nil, err
			}
			return &a, nil
		})

	srv.Tool("attendee.delete").
		Description("Remove a guest (super-admin only)").
		Handler(deleteHandler(app, func(c context.Context, u domain.User, id string) error {
			return app.Container.Coordinator.DeleteAttendee(c, u, id)
		}))

	srv.Tool("gallery.list").
		Description("List gallery photos, newest first").
		Handler(func(ctx context.Context, input struct{}) ([]domain.Photo, error) {
			if err := requireContainer(app); err != nil {
				return nil, err
			}
			return app.Container.Coordinator.Gallery(), nil
		})

	srv.Tool("gallery.add").
		Description("Add a photo by URL").
		Handler(func(ctx context.Context, input photoAddInput) (*domain.Photo, error) {
			user, err := actor(app)
			if err != nil {
				return nil, err
			}
			p, err := app.Container.Coordinator.AddPhoto(ctx, user, input.URL, input.Caption)
			if err != nil {
				return nil, err
			}
			return &p, nil
		})

	srv.Tool("gallery.delete").
		Description("Remove a photo (super-admin only)").
		Handler(deleteHandler(app, func(c context.Context, u domain.User, id string) error {
			return app.Container.Coordinator.DeletePhoto(c, u, id)
		}))

	return nil
}

func sessionAddHandler(app *cli.App) func(context.Context, sessionAddInput) (*domain.Session, error) {
	return func(ctx context.Context, input sessionAddInput) (*domain.Session, error) {
		user, err := actor(app)
		if err != nil {
			return nil, err
		}
		startsAt, err := parseInstant("starts_at", input.StartsAt)
		if err != nil {
			return nil, err
		}
		endsAt, err := parseInstant("ends_at", input.EndsAt)
		if err != nil {
			return nil, err
		}
		s, err := app.Container.Coordinator.AddSession(ctx, user, application.SessionInput{
			Title:       input.Title,
			Speaker:     input.Speaker,
			Location:    input.Location,
			Description: input.Description,
			StartsAt:    startsAt,
			EndsAt:      endsAt,
		})
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
}

func deleteHandler(app *cli.App, remove func(context.Context, domain.User, string) error) func(context.Context, idInput) (map[string]any, error) {
	return func(ctx context.Context, input idInput) (map[string]any, error) {
		user, err := actor(app)
		if err != nil {
			return nil, err
		}
		if input.ID == "" {
			return nil, errors.New("id is required")
		}
		if err := remove(ctx, user, input.ID); err != nil {
			return nil, err
		}
		return map[string]any{"id": input.ID, "deleted": true}, nil
	}
}
