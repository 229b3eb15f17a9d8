package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain/progress"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinator_RejectsInvalidWeights(t *testing.T) {
	_, err := application.NewCoordinator(application.Config{
		Weights: progress.PhaseWeights{
			domain.PhasePreEvent:    0.5,
			domain.PhaseDuringEvent: 0.5,
			domain.PhasePostEvent:   0.5,
		},
	})

	assert.ErrorIs(t, err, sharedDomain.ErrValidation)
}

func TestHydrate_FallsBackPerCollection(t *testing.T) {
	gateway := newMockGateway()
	seed := seedData()
	seed.Tasks = []domain.Task{{ID: "seed-task", CategoryID: "cat-001", Status: domain.StatusNotStarted}}

	gateway.tasks.On("SelectAll", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	gateway.categories.On("SelectAll", mock.Anything).Return([]domain.Category{
		{ID: "cat-db", Phase: domain.PhasePostEvent, Status: domain.StatusNotStarted},
	}, nil).Once()
	gateway.users.On("SelectAll", mock.Anything).Return(nil, errors.New("timeout")).Once()
	gateway.sessions.On("SelectAll", mock.Anything).Return([]domain.Session{}, nil).Once()
	gateway.attendees.On("SelectAll", mock.Anything).Return([]domain.Attendee{}, nil).Once()
	gateway.photos.On("SelectAll", mock.Anything).Return([]domain.Photo{}, nil).Once()

	coordinator, err := application.NewCoordinator(application.Config{Gateway: gateway, Seed: seed})
	require.NoError(t, err)
	defer coordinator.Close(context.Background())

	report := coordinator.Hydrate(context.Background())

	assert.True(t, report.FromSeed())
	assert.Equal(t, application.SourceSeed, report.Sources["tasks"])
	assert.Equal(t, application.SourceGateway, report.Sources["categories"])
	assert.Equal(t, application.SourceSeed, report.Sources["users"])
	assert.Equal(t, application.SourceGateway, report.Sources["photos"])

	require.Len(t, coordinator.Tasks(""), 1)
	assert.Equal(t, "seed-task", coordinator.Tasks("")[0].ID)
	require.Len(t, coordinator.Categories(), 1)
	assert.Equal(t, "cat-db", coordinator.Categories()[0].ID)
	assert.Len(t, coordinator.Users(), 3)
	gateway.assertExpectations(t)
}

func TestHydrate_WithoutGatewayUsesSeed(t *testing.T) {
	f := newFixture(t, false)

	assert.Len(t, f.coordinator.Categories(), 2)
	assert.Len(t, f.coordinator.Users(), 3)
}

func TestCoordinator_EndToEndProgress(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	done, err := f.coordinator.CreateTask(ctx, member, "cat-001", domain.TaskFields{Title: "Sign contract"})
	require.NoError(t, err)
	almost, err := f.coordinator.CreateTask(ctx, member, "cat-001", domain.TaskFields{Title: "Floor plan"})
	require.NoError(t, err)

	for range 10 {
		_, err = f.coordinator.QuickProgressUpdate(ctx, member, done.ID)
		require.NoError(t, err)
	}
	for range 8 {
		_, err = f.coordinator.QuickProgressUpdate(ctx, admin, almost.ID)
		require.NoError(t, err)
	}

	state := f.coordinator.DerivedState()

	cat, err := f.coordinator.Category("cat-001")
	require.NoError(t, err)
	assert.Equal(t, 90, cat.Progress)
	assert.Equal(t, domain.StatusInProgress, cat.Status)
	assert.Equal(t, 54, state.OverallProgress)
	assert.Equal(t, 2, state.TaskCount)
	assert.Equal(t, 1, state.CompletedTasks)

	require.Len(t, state.Phases, 3)
	assert.Equal(t, domain.PhasePreEvent, state.Phases[0].Phase)
	assert.InDelta(t, 90.0, state.Phases[0].Progress, 1e-9)
	assert.InDelta(t, 0.6, state.Phases[0].Weight, 1e-9)
	assert.Equal(t, 1, state.Phases[0].Categories)
	assert.Equal(t, 0, state.Phases[2].Categories)

	finished, err := f.coordinator.Task(done.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, finished.Status)
	assert.Len(t, finished.Updates, 10)
}

func TestCoordinator_DerivedValuesAreNotStored(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.gateway.tasks.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	created, err := f.coordinator.CreateTask(ctx, member, "cat-002", domain.TaskFields{})
	require.NoError(t, err)
	_, err = f.coordinator.QuickProgressUpdate(ctx, member, created.ID)
	require.NoError(t, err)
	f.drain(t)

	cat, err := f.coordinator.Category("cat-002")
	require.NoError(t, err)
	assert.Equal(t, 10, cat.Progress)
	f.gateway.categories.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.gateway.assertExpectations(t)
}

func TestCreateTask(t *testing.T) {
	t.Run("applies defaults and persists", func(t *testing.T) {
		f := newFixture(t, true)
		f.gateway.tasks.On("Insert", mock.Anything, mock.MatchedBy(func(tk domain.Task) bool {
			return tk.CategoryID == "cat-001" && tk.Title == domain.DefaultTaskTitle
		})).Return(nil).Once()

		created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
		require.NoError(t, err)
		f.drain(t)

		assert.Equal(t, []string{"Mira"}, created.AssignedTo)
		assert.Equal(t, domain.StatusNotStarted, created.Status)
		assert.Equal(t, domain.DateOf(fixedNow), created.DueDate)
		assert.Equal(t, []string{domain.RoutingKeyTaskCreated}, f.publisher.routingKeys())
		assert.Equal(t, "Mira", f.publisher.events[0].Metadata().Actor)
		f.gateway.assertExpectations(t)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.coordinator.CreateTask(context.Background(), member, "cat-404", domain.TaskFields{})

		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
		assert.ErrorIs(t, err, sharedDomain.ErrValidation)
		assert.Empty(t, f.coordinator.Tasks(""))
	})

	t.Run("rejects an empty category", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.coordinator.CreateTask(context.Background(), member, " ", domain.TaskFields{})

		assert.ErrorIs(t, err, domain.ErrMissingCategory)
	})

	t.Run("requires an actor", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.coordinator.CreateTask(context.Background(), domain.User{}, "cat-001", domain.TaskFields{})

		assert.ErrorIs(t, err, domain.ErrMissingActor)
	})
}

func TestQuickProgressUpdate_UnknownTask(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.coordinator.QuickProgressUpdate(context.Background(), member, "missing")

	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestChangeTaskStatus(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	created, err := f.coordinator.CreateTask(ctx, member, "cat-001", domain.TaskFields{})
	require.NoError(t, err)

	blocked, err := f.coordinator.ChangeTaskStatus(ctx, admin, created.ID, domain.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, blocked.Status)

	cat, err := f.coordinator.Category("cat-001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, cat.Status)

	_, err = f.coordinator.ChangeTaskStatus(ctx, admin, created.ID, domain.Status("paused"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	f.drain(t)
	assert.Equal(t, []string{domain.RoutingKeyTaskCreated, domain.RoutingKeyTaskStatusChanged}, f.publisher.routingKeys())
}

func TestEditTask(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	created, err := f.coordinator.CreateTask(ctx, member, "cat-001", domain.TaskFields{Title: "Draft"})
	require.NoError(t, err)

	edited, err := f.coordinator.EditTask(ctx, admin, created.ID, domain.TaskFields{Title: "Final", AssignedTo: []string{"Ayla"}})
	require.NoError(t, err)

	assert.Equal(t, "Final", edited.Title)
	assert.Equal(t, []string{"Ayla"}, edited.AssignedTo)
	assert.Equal(t, created.Progress, edited.Progress)

	_, err = f.coordinator.EditTask(ctx, admin, "missing", domain.TaskFields{})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	for _, actor := range []domain.User{admin, member} {
		t.Run("refuses "+string(actor.Role), func(t *testing.T) {
			f := newFixture(t, false)
			created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
			require.NoError(t, err)

			err = f.coordinator.DeleteTask(context.Background(), actor, created.ID)

			assert.ErrorIs(t, err, domain.ErrSuperAdminRequired)
			assert.ErrorIs(t, err, sharedDomain.ErrAuthorization)
			_, err = f.coordinator.Task(created.ID)
			assert.NoError(t, err)
		})
	}

	t.Run("super-admin hard deletes", func(t *testing.T) {
		f := newFixture(t, true)
		f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
		created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
		require.NoError(t, err)
		f.gateway.tasks.On("Delete", mock.Anything, created.ID).Return(nil).Once()

		require.NoError(t, f.coordinator.DeleteTask(context.Background(), superAdmin, created.ID))
		f.drain(t)

		_, err = f.coordinator.Task(created.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
		assert.Equal(t, []string{domain.RoutingKeyTaskCreated, domain.RoutingKeyTaskDeleted}, f.publisher.routingKeys())
		f.gateway.assertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newFixture(t, false)

		err := f.coordinator.DeleteTask(context.Background(), superAdmin, "missing")

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestPersistenceFailureKeepsChange(t *testing.T) {
	f := newFixture(t, true)
	f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
	require.NoError(t, err)
	f.drain(t)

	_, err = f.coordinator.Task(created.ID)
	assert.NoError(t, err)
	stats := f.coordinator.WriteStats()
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(0), stats.Succeeded)
	assert.Equal(t, []string{domain.RoutingKeyTaskCreated}, f.publisher.routingKeys())
}

func TestWritesKeepMutationOrder(t *testing.T) {
	f := newFixture(t, true)
	var progressSeen []int
	f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	f.gateway.tasks.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		progressSeen = append(progressSeen, args.Get(1).(domain.Task).Progress)
	}).Return(nil)

	created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
	require.NoError(t, err)
	for range 5 {
		_, err := f.coordinator.QuickProgressUpdate(context.Background(), member, created.ID)
		require.NoError(t, err)
	}
	f.drain(t)

	assert.Equal(t, []int{10, 20, 30, 40, 50}, progressSeen)
	assert.Equal(t, int64(6), f.coordinator.WriteStats().Succeeded)
}

func TestWritesAfterCloseAreDropped(t *testing.T) {
	f := newFixture(t, false)
	f.drain(t)

	_, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.coordinator.WriteStats().Dropped)
}

func TestStalledGatewayDoesNotBlockReaders(t *testing.T) {
	f := newFixture(t, true, func(cfg *application.Config) { cfg.QueueSize = 1 })
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(nil)

	created := make(chan struct{})
	go func() {
		defer close(created)
		for range 4 {
			_, _ = f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
		}
	}()
	select {
	case <-created:
	case <-time.After(time.Second):
		t.Fatal("CreateTask blocked on a stalled gateway")
	}

	read := make(chan application.DashboardState, 1)
	go func() { read <- f.coordinator.DerivedState() }()
	select {
	case got := <-read:
		assert.Equal(t, len(seedData().Tasks)+4, got.TaskCount)
	case <-time.After(time.Second):
		t.Fatal("DerivedState blocked on a stalled gateway")
	}

	_, err := f.coordinator.Authenticate("ayla@example.com", "1111")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, f.coordinator.WriteStats().Dropped, int64(2))
}

func TestWriteTimeoutFailsStalledWrite(t *testing.T) {
	f := newFixture(t, true, func(cfg *application.Config) { cfg.WriteTimeout = 20 * time.Millisecond })
	f.gateway.tasks.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(context.DeadlineExceeded).Once()

	_, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{})
	require.NoError(t, err)
	f.drain(t)

	stats := f.coordinator.WriteStats()
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, 0, stats.Pending)
}

func TestReturnedTasksDoNotAliasStore(t *testing.T) {
	f := newFixture(t, false)
	created, err := f.coordinator.CreateTask(context.Background(), member, "cat-001", domain.TaskFields{AssignedTo: []string{"usr-003"}})
	require.NoError(t, err)
	_, err = f.coordinator.QuickProgressUpdate(context.Background(), member, created.ID)
	require.NoError(t, err)

	got, err := f.coordinator.Task(created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, got.Updates)
	message := got.Updates[0].Message
	got.Updates[0].Message = "rewritten"
	got.AssignedTo[0] = "usr-999"

	listed := f.coordinator.Tasks("cat-001")
	for i := range listed {
		if listed[i].ID == created.ID {
			listed[i].AssignedTo[0] = "usr-999"
		}
	}

	again, err := f.coordinator.Task(created.ID)
	require.NoError(t, err)
	assert.Equal(t, message, again.Updates[0].Message)
	assert.Equal(t, []string{"usr-003"}, again.AssignedTo)
}

func TestSnapshotMatchesReads(t *testing.T) {
	f := newFixture(t, false)

	categories, tasks := f.coordinator.Snapshot()

	assert.Equal(t, f.coordinator.Categories(), categories)
	assert.Equal(t, f.coordinator.Tasks(""), tasks)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.coordinator.Authenticate("AYLA@example.com", "1111")
	require.NoError(t, err)
	assert.Equal(t, "usr-001", user.ID)

	_, err = f.coordinator.Authenticate("ayla@example.com", "9999")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
