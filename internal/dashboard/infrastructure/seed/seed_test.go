package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/persistence"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/migrations"
)

func TestDefault_IsConsistent(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Users, 3)
	assert.NotEmpty(t, ds.Categories)
	assert.Equal(t, "cat-001", ds.Categories[0].ID)
	assert.Equal(t, domain.PhasePreEvent, ds.Categories[0].Phase)

	for _, task := range ds.Tasks {
		assert.Equal(t, task.Status == domain.StatusCompleted, task.Progress == domain.MaxProgress, task.ID)
		assert.NotNil(t, task.Updates)
	}
	require.Len(t, ds.Sessions, 2)
	assert.True(t, ds.Sessions[0].EndsAt.After(ds.Sessions[0].StartsAt))
	assert.Empty(t, ds.Photos)
}

func TestParse_RejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "users:\n  - id: u\n    nickname: x\n"},
		{"bad role", "users:\n  - id: u\n    role: owner\n"},
		{"bad phase", "categories:\n  - id: c\n    phase: someday\n    status: not-started\n    priority: low\n    due_date: 2026-01-01\n"},
		{"orphan task", "tasks:\n  - id: t\n    category_id: missing\n    status: not-started\n    due_date: 2026-01-01\n"},
		{"completed below 100", "categories:\n  - id: c\n    phase: pre-event\n    status: not-started\n    priority: low\n    due_date: 2026-01-01\ntasks:\n  - id: t\n    category_id: c\n    status: completed\n    progress: 90\n    due_date: 2026-01-01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidSeed)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("attendees:\n  - id: a1\n    name: Lee\n"), 0o600))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Attendees, 1)
	assert.Equal(t, domain.RSVPPending, ds.Attendees[0].RSVP)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply_WritesEveryCollectionAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.OpenMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, migrations.Run(ctx, conn, ""))

	gw := persistence.NewGateway(conn)
	ds := MustDefault()

	counts, err := Apply(ctx, database.NewUnitOfWork(conn), gw, ds, nil)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Tasks), counts["tasks"])

	_, err = Apply(ctx, database.NewUnitOfWork(conn), gw, ds, nil)
	require.NoError(t, err)

	tasks, err := gw.Tasks().SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, len(ds.Tasks))

	users, err := gw.Users().SelectAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, ds.Users, users)
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.OpenMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, migrations.Run(ctx, conn, ""))
	_, err = conn.Exec(ctx, `DROP TABLE photos`)
	require.NoError(t, err)

	gw := persistence.NewGateway(conn)
	ds := MustDefault()
	ds.Photos = []domain.Photo{{ID: "ph-1", URL: "https://example.com/p.jpg"}}

	_, err = Apply(ctx, database.NewUnitOfWork(conn), gw, ds, nil)
	require.Error(t, err)

	users, err := gw.Users().SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
