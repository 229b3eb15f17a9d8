package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

func TestNewConnection_CreatesFileAndDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "eventboard.db")

	conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.FileExists(t, path)
	require.NoError(t, conn.Ping(ctx))

	var mode string
	require.NoError(t, conn.QueryRow(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestFactory_UsesRegisteredDriver(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.db")

	conn, err := database.NewConnection(ctx, database.Config{Driver: database.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, database.DriverSQLite, conn.Driver())
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE categories (id TEXT PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)

	result, err := conn.Exec(ctx, `INSERT INTO categories (id, name) VALUES (?, ?)`, "cat-001", "Venue")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var name string
	require.NoError(t, conn.QueryRow(ctx, `SELECT name FROM categories WHERE id = ?`, "cat-001").Scan(&name))
	assert.Equal(t, "Venue", name)

	_, err = conn.Exec(ctx, `INSERT INTO categories (id, name) VALUES (?, ?)`, "cat-002", "Catering")
	require.NoError(t, err)

	rows, err := conn.Query(ctx, `SELECT name FROM categories ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Venue", "Catering"}, names)
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE photos (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO photos (id) VALUES (?)`, "p1")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))

	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO photos (id) VALUES (?)`, "p2")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM photos`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUnitOfWork_NestedBeginDoesNotCommitOuter(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE users (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)
	outer, err := uow.Begin(ctx)
	require.NoError(t, err)
	inner, err := uow.Begin(outer)
	require.NoError(t, err)

	_, err = database.ExecutorFromContext(inner, conn).Exec(inner, `INSERT INTO users (id) VALUES (?)`, "u1")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(inner))
	require.NoError(t, uow.Rollback(outer))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Zero(t, count)
}

func TestWithPragmas(t *testing.T) {
	assert.Contains(t, withPragmas("/tmp/a.db"), "/tmp/a.db?_pragma=journal_mode(WAL)&")
	assert.Contains(t, withPragmas("file:a.db?cache=shared"), "cache=shared&_pragma=")
}
