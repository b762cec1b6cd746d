package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	user string
	err  error
}

func (m *memorySessionStore) SaveSession(user string) error {
	if m.err != nil {
		return m.err
	}
	m.user = user
	return nil
}

func (m *memorySessionStore) ClearSession() error {
	return m.SaveSession("")
}

func TestSessionLoginLogout(t *testing.T) {
	store := &memorySessionStore{}
	svc := NewSessionService("", store, nil)
	assert.True(t, svc.Current().IsAnonymous())
	assert.Equal(t, "Guest", svc.Current().DisplayName())

	user, err := svc.Login("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice", svc.Current().Name)
	assert.Equal(t, "alice", store.user)

	require.NoError(t, svc.Logout())
	assert.True(t, svc.Current().IsAnonymous())
	assert.Empty(t, store.user)
}

func TestSessionLoginRejectsBlankName(t *testing.T) {
	svc := NewSessionService("", &memorySessionStore{}, nil)

	_, err := svc.Login("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
	assert.True(t, svc.Current().IsAnonymous())
}

func TestSessionStoreFailureKeepsUser(t *testing.T) {
	store := &memorySessionStore{}
	svc := NewSessionService("bob", store, nil)

	store.err = errors.New("disk full")
	assert.Error(t, svc.Logout())
	assert.Equal(t, "bob", svc.Current().Name)
}

func TestAddFavorite(t *testing.T) {
	movie := domain.MovieSummary{ID: 42, Title: "Heat"}

	anon := NewSessionService("", &memorySessionStore{}, nil)
	assert.ErrorIs(t, anon.AddFavorite(movie), domain.ErrNotLoggedIn)

	named := NewSessionService("carol", &memorySessionStore{}, nil)
	err := named.AddFavorite(movie)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Contains(t, err.Error(), "carol is adding movie 42 to favorites")
}
