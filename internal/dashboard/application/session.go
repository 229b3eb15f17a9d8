package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

// SessionStore persists the signed-in user between process runs.
type SessionStore interface {
	Save(ctx context.Context, user domain.User) error
	// Load returns false when no user is stored.
	Load(ctx context.Context) (domain.User, bool, error)
	Clear(ctx context.Context) error
}

// Authenticator resolves credentials to a user.
type Authenticator interface {
	Authenticate(email, accessCode string) (domain.User, error)
}

// SessionContext holds the signed-in user for one process. It is created at
// startup, filled by Login or Restore and emptied by Logout.
type SessionContext struct {
	mu      sync.RWMutex
	current *domain.User
	store   SessionStore
	logger  *slog.Logger
}

// NewSessionContext creates an empty session. A nil store keeps the session
// in memory only.
func NewSessionContext(store SessionStore, logger *slog.Logger) *SessionContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionContext{store: store, logger: logger}
}

// Restore loads a previously saved user. Store failures leave the session
// signed out.
func (s *SessionContext) Restore(ctx context.Context) (domain.User, bool) {
	if s.store == nil {
		return domain.User{}, false
	}

	user, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to restore session", "error", err)
		return domain.User{}, false
	}
	if !ok {
		return domain.User{}, false
	}

	s.set(&user)
	return user, true
}

// Login authenticates the credentials and makes the user current.
// Failing to persist the session is logged; the login still succeeds.
func (s *SessionContext) Login(ctx context.Context, auth Authenticator, email, accessCode string) (domain.User, error) {
	user, err := auth.Authenticate(email, accessCode)
	if err != nil {
		return domain.User{}, err
	}
	user.AccessCode = ""

	s.set(&user)
	if s.store != nil {
		if err := s.store.Save(ctx, user); err != nil {
			s.logger.WarnContext(ctx, "failed to persist session", "user_id", user.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout clears the current user and the stored session.
func (s *SessionContext) Logout(ctx context.Context) error {
	s.set(nil)
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}

// Current returns the signed-in user, if any.
func (s *SessionContext) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// RequireUser returns the signed-in user or ErrNotSignedIn.
func (s *SessionContext) RequireUser() (domain.User, error) {
	user, ok := s.Current()
	if !ok {
		return domain.User{}, domain.ErrNotSignedIn
	}
	return user, nil
}

func (s *SessionContext) set(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user
}
