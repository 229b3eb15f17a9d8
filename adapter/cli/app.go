package cli

import (
	"errors"
	"sync"

	"github.com/felixgeelhaar/eventboard/internal/app"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// ErrNoDashboard is returned when a command runs before the container is set.
var ErrNoDashboard = errors.New("dashboard is not available: check the database settings")

// App holds the CLI application dependencies.
type App struct {
	Container *app.Container
}

// NewApp creates a CLI app backed by the container.
func NewApp(container *app.Container) *App {
	return &App{Container: container}
}

// Actor returns the signed-in user that mutating commands act as.
func (a *App) Actor() (domain.User, error) {
	return a.Container.Session.RequireUser()
}

var (
	appMu      sync.RWMutex
	currentApp *App
)

// SetApp sets the CLI application instance.
func SetApp(a *App) {
	appMu.Lock()
	defer appMu.Unlock()
	currentApp = a
}

// GetApp returns the CLI application instance, or nil.
func GetApp() *App {
	appMu.RLock()
	defer appMu.RUnlock()
	return currentApp
}

// RequireApp returns the application instance or ErrNoDashboard.
func RequireApp() (*App, error) {
	a := GetApp()
	if a == nil || a.Container == nil {
		return nil, ErrNoDashboard
	}
	return a, nil
}
