package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

func init() {
	database.RegisterSQLiteDriver(NewConnection)
}

// pragmas applied to every file database.
//   - journal_mode=WAL lets readers proceed during a write
//   - busy_timeout=5000 waits on a lock instead of failing immediately
//   - synchronous=NORMAL is safe under WAL
var pragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// NewConnection opens the SQLite file named by cfg.SQLitePath.
func NewConnection(ctx context.Context, cfg database.Config) (database.Connection, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = database.DefaultSQLitePath()
	}

	if err := database.EnsureDirectory(path); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := Open(ctx, withPragmas(path))
	if err != nil {
		return nil, err
	}
	return database.NewSQLConnection(db, database.DriverSQLite), nil
}

// OpenMemory opens a private in-memory database. Each call gets its own
// database, which makes it suitable for tests.
func OpenMemory(ctx context.Context) (*database.SQLConnection, error) {
	db, err := Open(ctx, ":memory:")
	if err != nil {
		return nil, err
	}
	return database.NewSQLConnection(db, database.DriverSQLite), nil
}

// Open opens dsn with a single connection, since SQLite allows one writer
// and an in-memory database lives only as long as its connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	return db, nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	params := make([]string, len(pragmas))
	for i, p := range pragmas {
		params[i] = "_pragma=" + p
	}
	return path + sep + strings.Join(params, "&")
}
