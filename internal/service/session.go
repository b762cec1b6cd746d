package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/flick/internal/config"
	"github.com/mmcdole/flick/internal/domain"
)

// SessionStore persists the session user
type SessionStore interface {
	SaveSession(user string) error
	ClearSession() error
}

// ConfigSessionStore persists the session in the config file
type ConfigSessionStore struct{}

func (ConfigSessionStore) SaveSession(user string) error { return config.SaveSession(user) }
func (ConfigSessionStore) ClearSession() error           { return config.ClearSession() }

// SessionService manages the client-side user session
type SessionService struct {
	store  SessionStore
	logger *slog.Logger

	mu   sync.RWMutex
	user domain.User
}

// NewSessionService creates a new SessionService starting as user
// (empty for anonymous)
func NewSessionService(user string, store SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  store,
		logger: logger,
		user:   domain.User{Name: strings.TrimSpace(user)},
	}
}

// Current returns the session user
func (s *SessionService) Current() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Login switches the session to a named user
func (s *SessionService) Login(name string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Anonymous, domain.ErrInvalidUser
	}

	if err := s.store.SaveSession(name); err != nil {
		s.logger.Error("failed to save session", "error", err)
		return domain.Anonymous, err
	}

	s.mu.Lock()
	s.user = domain.User{Name: name}
	s.mu.Unlock()

	s.logger.Info("logged in", "user", name)
	return domain.User{Name: name}, nil
}

// Logout clears the session user
func (s *SessionService) Logout() error {
	if err := s.store.ClearSession(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
		return err
	}

	s.mu.Lock()
	s.user = domain.Anonymous
	s.mu.Unlock()

	s.logger.Info("logged out")
	return nil
}

// AddFavorite is the user action on a movie. Favorites are not stored
// anywhere, so a logged-in user gets ErrNotImplemented with a description
// of what would have happened.
func (s *SessionService) AddFavorite(movie domain.MovieSummary) error {
	user := s.Current()
	if user.IsAnonymous() {
		return domain.ErrNotLoggedIn
	}

	s.logger.Info("favorite requested", "user", user.Name, "movie", movie.ID)
	return fmt.Errorf("%w! Action: %s is adding movie %d to favorites", domain.ErrNotImplemented, user.Name, movie.ID)
}
