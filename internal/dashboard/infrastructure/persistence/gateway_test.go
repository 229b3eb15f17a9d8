package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/migrations"
)

func newSQLiteGateway(t *testing.T) (*Gateway, database.Connection) {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn, ""))
	return NewGateway(conn), conn
}

func sampleTask() domain.Task {
	return domain.Task{
		ID:          "task-1",
		CategoryID:  "cat-001",
		Title:       "Book venue",
		Description: "Main hall",
		AssignedTo:  []string{"Ayla", "Jon"},
		Status:      domain.StatusInProgress,
		Progress:    40,
		DueDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Updates: []domain.TaskUpdate{{
			Timestamp:      time.Date(2026, 5, 4, 14, 30, 0, 0, time.UTC),
			User:           "Ayla",
			Message:        "Progress updated from 30% to 40%",
			ProgressBefore: 30,
			ProgressAfter:  40,
		}},
	}
}

func TestGateway_TaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	task := sampleTask()
	require.NoError(t, gw.Tasks().Insert(ctx, task))

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task, tasks[0])
}

func TestGateway_InsertDuplicateFails(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	require.NoError(t, gw.Tasks().Insert(ctx, sampleTask()))
	assert.Error(t, gw.Tasks().Insert(ctx, sampleTask()))
}

func TestGateway_UpsertReplacesRow(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	task := sampleTask()
	require.NoError(t, gw.Tasks().Upsert(ctx, task))

	task.Progress = 100
	task.Status = domain.StatusCompleted
	task.AssignedTo = nil
	require.NoError(t, gw.Tasks().Upsert(ctx, task))

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 100, tasks[0].Progress)
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)
	assert.Empty(t, tasks[0].AssignedTo)
	assert.NotNil(t, tasks[0].AssignedTo)
}

func TestGateway_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	require.NoError(t, gw.Tasks().Insert(ctx, sampleTask()))
	require.NoError(t, gw.Tasks().Delete(ctx, "task-1"))
	require.NoError(t, gw.Tasks().Delete(ctx, "task-1"))

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGateway_TasksOrderedByDueDate(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	late := sampleTask()
	late.ID = "a-late"
	late.DueDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	early := sampleTask()
	early.ID = "z-early"
	early.DueDate = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, gw.Tasks().Insert(ctx, late))
	require.NoError(t, gw.Tasks().Insert(ctx, early))

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "z-early", tasks[0].ID)
}

func TestGateway_CategoryAndUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	cat := domain.Category{
		ID:                 "cat-001",
		Name:               "Venue",
		Description:        "Find and book",
		Phase:              domain.PhasePreEvent,
		ResponsiblePersons: []string{"Ayla"},
		Progress:           0,
		Status:             domain.StatusNotStarted,
		DueDate:            time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Priority:           domain.PriorityHigh,
	}
	user := domain.User{ID: "usr-001", Name: "Ayla", Email: "ayla@example.com", Role: domain.RoleSuperAdmin, AccessCode: "1111"}

	require.NoError(t, gw.Categories().Insert(ctx, cat))
	require.NoError(t, gw.Users().Insert(ctx, user))

	cats, err := gw.Categories().SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{cat}, cats)

	users, err := gw.Users().SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.User{user}, users)
}

func TestGateway_ProgrammeRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw, _ := newSQLiteGateway(t)

	session := domain.Session{
		ID:       "ses-1",
		Title:    "Keynote",
		Speaker:  "Ayla",
		Location: "Hall A",
		StartsAt: time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	attendee := domain.Attendee{ID: "att-1", Name: "Lee", Email: "lee@example.com", RSVP: domain.RSVPConfirmed, CheckedIn: true}
	photo := domain.Photo{ID: "ph-1", URL: "https://example.com/a.jpg", Caption: "Stage", UploadedBy: "Jon", UploadedAt: time.Date(2026, 6, 2, 11, 0, 0, 0, time.UTC)}

	require.NoError(t, gw.Sessions().Insert(ctx, session))
	require.NoError(t, gw.Attendees().Insert(ctx, attendee))
	require.NoError(t, gw.Photos().Insert(ctx, photo))

	sessions, err := gw.Sessions().SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Session{session}, sessions)

	attendees, err := gw.Attendees().SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Attendee{attendee}, attendees)

	photos, err := gw.Photos().SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Photo{photo}, photos)
}

func TestGateway_WritesJoinContextTransaction(t *testing.T) {
	ctx := context.Background()
	gw, conn := newSQLiteGateway(t)

	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, gw.Tasks().Insert(txCtx, sampleTask()))
	require.NoError(t, uow.Rollback(txCtx))

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func newPostgresMock(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	conn := database.NewSQLConnection(db, database.DriverPostgres)
	t.Cleanup(func() { _ = conn.Close() })
	return NewGateway(conn), mock
}

func TestGateway_PostgresUpsertUsesDollarPlaceholders(t *testing.T) {
	gw, mock := newPostgresMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO attendees (id,name,email,organization,rsvp,checked_in) VALUES ($1,$2,$3,$4,$5,$6) "+
			"ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email, "+
			"organization = excluded.organization, rsvp = excluded.rsvp, checked_in = excluded.checked_in")).
		WithArgs("att-1", "Lee", "", "", "pending", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := gw.Attendees().Upsert(context.Background(), domain.Attendee{ID: "att-1", Name: "Lee", RSVP: domain.RSVPPending, CheckedIn: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_PostgresDelete(t *testing.T) {
	gw, mock := newPostgresMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM photos WHERE id = $1")).
		WithArgs("ph-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, gw.Photos().Delete(context.Background(), "ph-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_SelectErrorIsWrapped(t *testing.T) {
	gw, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, role, access_code FROM users ORDER BY id")).
		WillReturnError(errors.New("connection reset"))

	_, err := gw.Users().SelectAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select users")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_CorruptRowFailsScan(t *testing.T) {
	gw, mock := newPostgresMock(t)

	rows := sqlmock.NewRows(taskColumns).
		AddRow("task-1", "cat-001", "T", "", "not json", "in-progress", 10, "2026-06-01", "[]")
	mock.ExpectQuery("SELECT .* FROM tasks ORDER BY due_date, id").WillReturnRows(rows)

	_, err := gw.Tasks().SelectAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigned_to")
}
