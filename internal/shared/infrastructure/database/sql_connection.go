package database

import (
	"context"
	"database/sql"
)

// SQLConnection adapts a database/sql handle to Connection. The driver only
// labels the dialect; the handle decides how queries are executed.
type SQLConnection struct {
	db     *sql.DB
	driver Driver
}

// NewSQLConnection wraps db, which speaks the dialect of driver.
func NewSQLConnection(db *sql.DB, driver Driver) *SQLConnection {
	return &SQLConnection{db: db, driver: driver}
}

// DB returns the underlying sql.DB.
func (c *SQLConnection) DB() *sql.DB { return c.db }

// Driver returns the dialect of the connection.
func (c *SQLConnection) Driver() Driver { return c.driver }

// Close closes the database handle.
func (c *SQLConnection) Close() error { return c.db.Close() }

// Ping verifies the connection is still alive.
func (c *SQLConnection) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

// BeginTx starts a new transaction.
func (c *SQLConnection) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTransaction{tx: tx}, nil
}

func (c *SQLConnection) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

func (c *SQLConnection) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

func (c *SQLConnection) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

type sqlTransaction struct {
	tx *sql.Tx
}

func (t *sqlTransaction) Commit(context.Context) error   { return t.tx.Commit() }
func (t *sqlTransaction) Rollback(context.Context) error { return t.tx.Rollback() }

func (t *sqlTransaction) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *sqlTransaction) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *sqlTransaction) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}
