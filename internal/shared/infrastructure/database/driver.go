package database

import (
	"fmt"
	"strings"
)

// Driver names the SQL dialect behind a Connection.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string {
	return string(d)
}

// IsValid reports whether d is a supported dialect.
func (d Driver) IsValid() bool {
	return d == DriverPostgres || d == DriverSQLite
}

// ResolveDriver picks the dialect from an explicit DATABASE_DRIVER value,
// falling back to the shape of the URL when name is empty or "auto".
// An empty URL selects SQLite so a fresh checkout runs without a server.
func ResolveDriver(name, url string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
	case "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", name)
	}

	switch {
	case url == "":
		return DriverSQLite, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"):
		return DriverSQLite, nil
	}
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(url, ext) {
			return DriverSQLite, nil
		}
	}
	return "", fmt.Errorf("cannot tell the database driver from %q, set DATABASE_DRIVER", redactURL(url))
}

// redactURL drops credentials so the URL can appear in errors and logs.
func redactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}
