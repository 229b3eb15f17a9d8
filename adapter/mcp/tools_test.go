package mcp

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/app"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/pkg/config"
)

func newTestApp(t *testing.T) *cli.App {
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
	container, err := app.NewContainer(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { container.Close(ctx) })
	return cli.NewApp(container)
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools: true,
		},
	})

	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: &cli.App{}}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	for _, want := range []string{
		"cli.health", "auth.login", "dashboard.summary", "category.list",
		"task.create", "task.progress", "task.status", "task.edit", "task.delete",
		"schedule.add", "schedule.export", "attendee.checkin", "gallery.add",
		"insights.generate", "activity.recent",
	} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestRegisterCLITools_RequiresApp(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{Name: "test", Version: "1.0.0"})
	assert.Error(t, RegisterCLITools(srv, ToolDependencies{}))
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
}

func TestTaskTools_ActAsSignedInUser(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := taskCreateHandler(a)(ctx, taskCreateInput{CategoryID: "cat-005", Title: "Survey"})
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)

	user, err := loginHandler(a)(ctx, loginInput{Email: "mira@eventboard.local", AccessCode: "3333"})
	require.NoError(t, err)
	assert.Equal(t, "Mira Chen", user.Name)
	assert.Empty(t, user.AccessCode)

	who, err := whoamiHandler(a)(ctx, struct{}{})
	require.NoError(t, err)
	assert.True(t, who.SignedIn)

	task, err := taskCreateHandler(a)(ctx, taskCreateInput{CategoryID: "cat-005", Title: "Survey", DueDate: "2026-07-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mira Chen"}, task.AssignedTo)

	_, err = taskCreateHandler(a)(ctx, taskCreateInput{CategoryID: "cat-005", DueDate: "July"})
	assert.Error(t, err)

	progressed, err := taskProgressHandler(a)(ctx, taskIDInput{TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, 10, progressed.Progress)
	assert.Equal(t, domain.StatusInProgress, progressed.Status)

	title := "Send survey"
	edited, err := taskEditHandler(a)(ctx, taskEditInput{TaskID: task.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Send survey", edited.Title)
	assert.Equal(t, "2026-07-01", edited.DueDate.Format(domain.DateLayout))
	assert.Equal(t, 10, edited.Progress)

	inProgress, err := taskListHandler(a)(ctx, taskListInput{CategoryID: "cat-005", Status: "in-progress"})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)

	_, err = taskListHandler(a)(ctx, taskListInput{Status: "paused"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCategoryListHandler_FiltersByPhase(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	all, err := categoryListHandler(a)(ctx, categoryListInput{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	pre, err := categoryListHandler(a)(ctx, categoryListInput{Phase: "pre-event"})
	require.NoError(t, err)
	assert.Len(t, pre, 3)

	_, err = categoryListHandler(a)(ctx, categoryListInput{Phase: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}

func TestProgrammeTools(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := loginHandler(a)(ctx, loginInput{Email: "jon@eventboard.local", AccessCode: "2222"})
	require.NoError(t, err)

	s, err := sessionAddHandler(a)(ctx, sessionAddInput{
		Title:    "Closing panel",
		StartsAt: "2026-06-02T16:00:00Z",
		EndsAt:   "2026-06-02T17:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "Closing panel", s.Title)

	_, err = sessionAddHandler(a)(ctx, sessionAddInput{Title: "No start", EndsAt: "2026-06-02T17:00:00Z"})
	assert.Error(t, err)

	remove := deleteHandler(a, func(c context.Context, u domain.User, id string) error {
		return a.Container.Coordinator.DeleteSession(c, u, id)
	})
	_, err = remove(ctx, idInput{ID: s.ID})
	assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
	_, err = remove(ctx, idInput{})
	assert.Error(t, err)
}

func TestStatsHandler(t *testing.T) {
	a := newTestApp(t)
	stats, err := statsHandler(a)(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Contains(t, stats.Sources, "tasks")

	_, err = statsHandler(&cli.App{})(context.Background(), struct{}{})
	assert.ErrorIs(t, err, errNoApp)
}

func TestJSONResource(t *testing.T) {
	a := newTestApp(t)
	read := jsonResource(a, func(a *cli.App) any { return a.Container.Coordinator.Categories() })

	content, err := read(context.Background(), "eventboard://categories", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", content.MimeType)
	assert.Contains(t, content.Text, `"id": "cat-001"`)

	_, err = jsonResource(nil, func(*cli.App) any { return nil })(context.Background(), "eventboard://categories", nil)
	assert.ErrorIs(t, err, errNoApp)
}
