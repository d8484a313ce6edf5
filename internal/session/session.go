package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

// Session is the single owning context for the authenticated state of a
// running application. It wraps a Store, decodes token claims for expiry
// checks, and publishes lifecycle events to subscribers.
type Session struct {
	store  Store
	events *Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

// New constructs a session context around the given store.
func New(store Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:  store,
		events: NewDispatcher(),
		logger: logger,
		now:    time.Now,
	}
}

// Events exposes the session event bus for subscribers.
func (s *Session) Events() *Dispatcher {
	return s.events
}

// Token returns the stored token, or empty when absent. Never fails.
func (s *Session) Token() string {
	return s.store.Token()
}

// CurrentUser returns the stored user record, or nil when absent. Never fails.
func (s *Session) CurrentUser() *domain.User {
	return s.store.User()
}

// Role returns the current user's role, or empty when unauthenticated.
func (s *Session) Role() domain.Role {
	if user := s.store.User(); user != nil {
		return user.UserRole
	}
	return ""
}

// Establish persists the token and user record as a unit and announces the
// login to subscribers.
func (s *Session) Establish(token string, user *domain.User) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.store.Save(token, user); err != nil {
		return err
	}
	s.logger.Info("session established", zap.String("role", string(user.UserRole)))
	s.events.Publish(Event{Type: EventLoggedIn, User: user})
	return nil
}

// UpdateUser rewrites the stored user record in place, keeping the current
// token. Used when profile fields change.
func (s *Session) UpdateUser(user *domain.User) error {
	token := s.store.Token()
	if token == "" {
		return errors.New("no active session")
	}
	return s.store.Save(token, user)
}

// Terminate clears the stored state and announces the logout. Idempotent.
func (s *Session) Terminate() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventLoggedOut})
	return nil
}

// Expire is invoked when the server rejects the session (401). It clears the
// store and issues a navigation command toward the given target, typically
// the login screen.
func (s *Session) Expire(target string) {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear rejected session", zap.Error(err))
	}
	s.logger.Info("session expired", zap.String("redirect", target))
	s.events.Publish(Event{Type: EventSessionExpired})
	s.events.Publish(Event{Type: EventNavigate, Target: target})
}

// IsAuthenticated reports whether a structurally valid, unexpired token is
// stored. A malformed or expired token is cleared as a side effect so it can
// never be reused.
func (s *Session) IsAuthenticated() bool {
	token := s.store.Token()
	if token == "" {
		return false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Warn("stored token is malformed, clearing", zap.Error(err))
		_ = s.Terminate()
		return false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now()) {
		s.logger.Info("stored token is expired, clearing")
		_ = s.Terminate()
		return false
	}
	return true
}
