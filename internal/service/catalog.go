package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/flick/internal/catalog"
	"github.com/mmcdole/flick/internal/domain"
	"golang.org/x/sync/errgroup"
)

// cachedResult stores cached data with timestamp
type cachedResult struct {
	Items     interface{}
	FetchedAt time.Time
}

// keywordTTL bounds how long a keyword lookup is reused. Genres live until
// Refresh.
const keywordTTL = 10 * time.Minute

var _ domain.PageResolver = (*CatalogService)(nil)

// Bootstrap is the static data loaded at startup
type Bootstrap struct {
	Configuration *domain.Configuration
	Genres        []domain.Genre
}

// CatalogService handles movie discovery with caching
type CatalogService struct {
	repo      domain.CatalogRepository
	pages     *catalog.Cache
	config    catalog.ConfigurationStore
	imageSize string
	logger    *slog.Logger

	cache   map[string]cachedResult
	cacheMu sync.RWMutex
	now     func() time.Time
}

// NewCatalogService creates a new catalog service.
// Pages are resolved through an accumulating catalog.Cache in front of repo.
func NewCatalogService(repo domain.CatalogRepository, imageSize string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:      repo,
		pages:     catalog.NewCache(repo, logger),
		imageSize: imageSize,
		logger:    logger,
		cache:     make(map[string]cachedResult),
		now:       time.Now,
	}
}

// Bootstrap loads the server configuration and the genre list concurrently
func (s *CatalogService) Bootstrap(ctx context.Context) (*Bootstrap, error) {
	var result Bootstrap

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := s.config.Load(gctx, s.repo)
		if err != nil {
			s.logger.Error("failed to load configuration", "error", err)
			return err
		}
		result.Configuration = cfg
		return nil
	})
	g.Go(func() error {
		genres, err := s.Genres(gctx)
		if err != nil {
			return err
		}
		result.Genres = genres
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("bootstrap complete", "imageBaseURL", result.Configuration.ImageBaseURL, "genres", len(result.Genres))
	return &result, nil
}

// Genres returns the movie genre list
func (s *CatalogService) Genres(ctx context.Context) ([]domain.Genre, error) {
	if cached, ok := s.getFromCache(PrefixGenres, 0); ok {
		s.logger.Debug("cache hit", "key", PrefixGenres)
		return cached.([]domain.Genre), nil
	}

	genres, err := s.repo.FetchGenres(ctx)
	if err != nil {
		s.logger.Error("failed to get genres", "error", err)
		return nil, err
	}

	s.setCache(PrefixGenres, genres)
	s.logger.Info("loaded genres", "count", len(genres))
	return genres, nil
}

// SearchKeywords returns keywords matching text, ranked against it.
// Blank text returns nothing without a request.
func (s *CatalogService) SearchKeywords(ctx context.Context, text string) ([]domain.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	cacheKey := PrefixKeywords + strings.ToLower(text)
	if cached, ok := s.getFromCache(cacheKey, keywordTTL); ok {
		s.logger.Debug("cache hit", "key", cacheKey)
		return cached.([]domain.Keyword), nil
	}

	keywords, err := s.repo.SearchKeywords(ctx, text)
	if err != nil {
		s.logger.Error("failed to search keywords", "query", text, "error", err)
		return nil, err
	}

	keywords = RankKeywords(keywords, text)
	s.setCache(cacheKey, keywords)
	s.logger.Debug("keyword search complete", "query", text, "results", len(keywords))
	return keywords, nil
}

// Resolve returns one discover page through the page cache
func (s *CatalogService) Resolve(ctx context.Context, q domain.Query) (domain.PageResult, error) {
	return s.pages.Resolve(ctx, q)
}

// Discover loads up to maxPages consecutive pages for f, reporting progress
// after each page. maxPages <= 0 loads until the list is exhausted.
func (s *CatalogService) Discover(
	ctx context.Context,
	f domain.Filters,
	maxPages int,
	onProgress func(page, totalPages int),
) ([]domain.MovieSummary, error) {
	return fetchPages(ctx, func(ctx context.Context, page int) ([]domain.MovieSummary, int, error) {
		res, err := s.pages.Resolve(ctx, domain.Query{Page: page, Filters: f})
		if err != nil {
			return nil, 0, err
		}
		return res.Items, res.TotalPages, nil
	}, maxPages, onProgress)
}

// Configuration returns the loaded server configuration or nil
func (s *CatalogService) Configuration() *domain.Configuration {
	return s.config.Get()
}

// ImageURL resolves the backdrop URL of a movie at the configured size
func (s *CatalogService) ImageURL(m domain.MovieSummary) (string, bool) {
	return catalog.ResolveImageURL(s.config.Get(), m.BackdropPath, s.imageSize)
}

// Refresh drops cached pages and lookups. The configuration is kept.
func (s *CatalogService) Refresh() {
	s.pages.Invalidate()

	s.cacheMu.Lock()
	s.cache = make(map[string]cachedResult)
	s.cacheMu.Unlock()

	s.logger.Info("refreshed catalog caches")
}

// getFromCache returns a cached lookup. A positive ttl expires entries
// older than it.
func (s *CatalogService) getFromCache(key string, ttl time.Duration) (interface{}, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	cached, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if ttl > 0 && s.now().Sub(cached.FetchedAt) > ttl {
		return nil, false
	}
	return cached.Items, true
}

func (s *CatalogService) setCache(key string, items interface{}) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cachedResult{
		Items:     items,
		FetchedAt: s.now(),
	}
}
