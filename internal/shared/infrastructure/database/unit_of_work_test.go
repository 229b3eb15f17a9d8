package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConnection(t *testing.T) (*SQLConnection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLConnection(db, DriverSQLite), mock
}

func TestUnitOfWork_CommitsOwnedTransaction(t *testing.T) {
	conn, mock := newMockConnection(t)
	uow := NewUnitOfWork(conn)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	ctx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	_, err = ExecutorFromContext(ctx, conn).Exec(ctx, "DELETE FROM tasks")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_NestedUnitJoinsOuterTransaction(t *testing.T) {
	conn, mock := newMockConnection(t)
	uow := NewUnitOfWork(conn)

	mock.ExpectBegin()
	mock.ExpectRollback()

	outer, err := uow.Begin(context.Background())
	require.NoError(t, err)
	inner, err := uow.Begin(outer)
	require.NoError(t, err)

	// The inner unit does not own the transaction, so these are no-ops.
	require.NoError(t, uow.Commit(inner))
	require.NoError(t, uow.Rollback(inner))

	require.NoError(t, uow.Rollback(outer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_WithoutBegin(t *testing.T) {
	conn, _ := newMockConnection(t)
	uow := NewUnitOfWork(conn)

	assert.ErrorIs(t, uow.Commit(context.Background()), ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(context.Background()), ErrNoTransaction)
	assert.Same(t, Executor(conn), ExecutorFromContext(context.Background(), conn))
}
