// Package migrations creates the dashboard tables for each supported driver.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationFS embed.FS

// Files returns the ordered .up.sql files for driver.
func Files(driver database.Driver) ([]string, error) {
	dir, err := dirFor(driver)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, dir+"/"+entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

// Run applies every migration for the connection's driver. Migrations are
// written with IF NOT EXISTS so running them again is harmless. On
// PostgreSQL the schema is created first; an empty schema means "public".
func Run(ctx context.Context, conn database.Connection, schema string) error {
	if conn.Driver() == database.DriverPostgres && schema != "" && schema != "public" {
		stmt := "CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema %s: %w", schema, err)
		}
	}

	files, err := Files(conn.Driver())
	if err != nil {
		return err
	}

	for _, file := range files {
		migration, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := conn.Exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

func dirFor(driver database.Driver) (string, error) {
	switch driver {
	case database.DriverSQLite:
		return "sqlite", nil
	case database.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}
