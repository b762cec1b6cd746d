package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImageURL(t *testing.T) {
	cfg := &domain.Configuration{ImageBaseURL: "https://img/"}

	tests := []struct {
		name   string
		cfg    *domain.Configuration
		path   string
		want   string
		wantOK bool
	}{
		{"configured", cfg, "/x.jpg", "https://img/w780/x.jpg", true},
		{"not loaded", nil, "/x.jpg", "", false},
		{"no backdrop", cfg, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveImageURL(tt.cfg, tt.path, "w780")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigurationStoreLoadsOnce(t *testing.T) {
	repo := &fakeRepo{config: domain.Configuration{ImageBaseURL: "https://img/"}, release: make(chan struct{})}
	var store ConfigurationStore
	assert.Nil(t, store.Get())

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := store.Load(context.Background(), repo)
			assert.NoError(t, err)
			assert.Equal(t, "https://img/", cfg.ImageBaseURL)
		}()
	}

	require.Eventually(t, func() bool { return repo.configCalls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.configCalls.Load())
	require.NotNil(t, store.Get())

	// already loaded: no further request
	_, err := store.Load(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.configCalls.Load())
}

func TestConfigurationStoreSurvivesCancelledCaller(t *testing.T) {
	repo := &fakeRepo{config: domain.Configuration{ImageBaseURL: "https://img/"}, release: make(chan struct{})}
	var store ConfigurationStore

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := store.Load(ctx, repo)
		first <- err
	}()
	require.Eventually(t, func() bool { return repo.configCalls.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan error, 1)
	go func() {
		_, err := store.Load(context.Background(), repo)
		second <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	require.NoError(t, <-second)
	assert.Equal(t, int32(1), repo.configCalls.Load(), "second caller joined the running fetch")
	require.NotNil(t, store.Get())
	assert.Equal(t, "https://img/", store.Get().ImageBaseURL)
}

func TestConfigurationStoreFailureLeavesEmpty(t *testing.T) {
	repo := &fakeRepo{configErr: domain.ErrNetwork}
	var store ConfigurationStore

	_, err := store.Load(context.Background(), repo)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Nil(t, store.Get())

	repo.configErr = nil
	repo.config = domain.Configuration{ImageBaseURL: "https://img/"}
	cfg, err := store.Load(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, "https://img/", cfg.ImageBaseURL)
}
