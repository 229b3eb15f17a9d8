package mcp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/eventboard/adapter/cli"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

var errNoApp = errors.New("dashboard requires database connection")

func requireContainer(app *cli.App) error {
	if app == nil || app.Container == nil {
		return errNoApp
	}
	return nil
}

// actor returns the signed-in user the tool acts as.
func actor(app *cli.App) (domain.User, error) {
	if err := requireContainer(app); err != nil {
		return domain.User{}, err
	}
	return app.Actor()
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return &parsed, nil
}

func parseInstant(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, use RFC 3339 (2026-06-02T09:00:00Z): %w", name, err)
	}
	return parsed, nil
}

func requireID(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}
