package programme

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	internalApp "github.com/felixgeelhaar/eventboard/internal/app"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/pkg/config"
)

func setupApp(t *testing.T, email, code string) *cli.App {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		AppEnv:                 "test",
		DatabaseDriver:         "sqlite",
		SQLitePath:             filepath.Join(dir, "test.db"),
		SessionFile:            filepath.Join(dir, "session.json"),
		EventBus:               config.EventBusInProcess,
		PhaseWeightPreEvent:    0.6,
		PhaseWeightDuringEvent: 0.2,
		PhaseWeightPostEvent:   0.2,
		WriteQueueSize:         16,
	}

	ctx := context.Background()
	container, err := internalApp.NewContainer(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { container.Close(ctx) })

	_, err = container.Session.Login(ctx, container.Coordinator, email, code)
	require.NoError(t, err)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return app
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

func TestScheduleCommands(t *testing.T) {
	app := setupApp(t, "jon@eventboard.local", "2222")

	sessionStart = "2026-06-01 07:00"
	sessionEnd = "2026-06-01 07:30"
	sessionSpeaker = "Mira Chen"
	sessionLocation = "Lobby"
	out, err := run(t, scheduleAddCmd, "Registration")
	require.NoError(t, err)
	assert.Contains(t, out, "Session added: Registration")

	sessions := app.Container.Coordinator.Schedule()
	require.Len(t, sessions, 3)
	assert.Equal(t, "Registration", sessions[0].Title)

	sessionEnd = "2026-06-01 06:00"
	_, err = run(t, scheduleAddCmd, "Backwards")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	sessionEnd = "soon"
	_, err = run(t, scheduleAddCmd, "Unparsable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")

	out, err = run(t, scheduleListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Opening keynote")

	_, err = run(t, scheduleDeleteCmd, sessions[0].ID)
	assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
}

func TestAttendeeCommands(t *testing.T) {
	app := setupApp(t, "ayla@eventboard.local", "1111")

	attendeeEmail = "kim@example.com"
	attendeeOrganization = "Initech"
	_, err := run(t, attendeeAddCmd, "Kim Lee")
	require.NoError(t, err)

	var id string
	for _, a := range app.Container.Coordinator.Attendees() {
		if a.Name == "Kim Lee" {
			id = a.ID
		}
	}
	require.NotEmpty(t, id)

	_, err = run(t, attendeeRSVPCmd, id, "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidRSVP)

	_, err = run(t, attendeeRSVPCmd, id, "declined")
	require.NoError(t, err)

	out, err := run(t, attendeeCheckInCmd, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Kim Lee checked in.")

	out, err = run(t, attendeeListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "3 guests: 2 confirmed, 1 pending, 0 declined, 1 checked in")

	_, err = run(t, attendeeDeleteCmd, id)
	require.NoError(t, err)
	assert.Len(t, app.Container.Coordinator.Attendees(), 2)

	_, err = run(t, attendeeCheckInCmd, id)
	assert.ErrorIs(t, err, domain.ErrAttendeeNotFound)
}

func TestGalleryCommands(t *testing.T) {
	app := setupApp(t, "mira@eventboard.local", "3333")

	out, err := run(t, galleryListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "The gallery is empty.")

	photoCaption = "Keynote crowd"
	_, err = run(t, galleryAddCmd, "https://photos.example.com/1.jpg")
	require.NoError(t, err)

	_, err = run(t, galleryAddCmd, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingURL)

	photos := app.Container.Coordinator.Gallery()
	require.Len(t, photos, 1)
	assert.Equal(t, "Mira Chen", photos[0].UploadedBy)

	out, err = run(t, galleryListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Keynote crowd")

	_, err = run(t, galleryDeleteCmd, photos[0].ID)
	assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
}
