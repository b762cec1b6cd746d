package catalog

import (
	"context"
	"sync/atomic"

	"github.com/mmcdole/flick/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ResolveImageURL builds the absolute URL of an image. It reports false
// when the configuration has not loaded yet or the movie has no image.
func ResolveImageURL(cfg *domain.Configuration, path, size string) (string, bool) {
	if cfg == nil || path == "" {
		return "", false
	}
	return cfg.ImageBaseURL + size + path, true
}

// ConfigurationStore holds the server configuration for the lifetime of
// the process. It is written once, by the first successful Load.
type ConfigurationStore struct {
	value atomic.Pointer[domain.Configuration]
	group singleflight.Group
}

// Get returns the loaded configuration or nil
func (s *ConfigurationStore) Get() *domain.Configuration {
	return s.value.Load()
}

// Load fetches the configuration unless it is already present. Concurrent
// callers share one request; a failed fetch leaves the store empty. A
// caller that gives up does not cancel the fetch for the others.
func (s *ConfigurationStore) Load(ctx context.Context, repo domain.CatalogRepository) (*domain.Configuration, error) {
	if cfg := s.Get(); cfg != nil {
		return cfg, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("configuration", func() (any, error) {
		cfg, err := repo.FetchConfiguration(fetchCtx)
		if err != nil {
			return nil, err
		}
		s.value.CompareAndSwap(nil, &cfg)
		return s.value.Load(), nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Configuration), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
