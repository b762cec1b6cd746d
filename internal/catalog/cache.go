package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/mmcdole/flick/internal/domain"
	"golang.org/x/sync/singleflight"
)

var _ domain.PageResolver = (*Cache)(nil)

// Entry is a snapshot of one accumulated filter entry
type Entry struct {
	Key          string
	Items        []domain.MovieSummary
	LastPage     int
	TotalPages   int
	HasMorePages bool
	Loading      bool
	Err          error
}

// entry is the mutable cache record behind an Entry. gen distinguishes
// entries recreated under the same key so in-flight work for a dropped
// entry never lands in its replacement.
type entry struct {
	Entry
	gen      uint64
	pages    map[int]domain.PageResult
	inflight int
}

// Cache resolves discover pages, accumulating every page of one filter set
// into a single entry keyed by CacheKey. Safe for concurrent use.
type Cache struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	lastKey string
	gen     uint64

	group singleflight.Group
}

// NewCache creates a cache in front of repo
func NewCache(repo domain.CatalogRepository, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		repo:    repo,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Resolve returns the requested page. When the filter set differs from the
// previously resolved one, a fresh entry is started and page 1 is fetched
// regardless of the requested page. Pages already merged into the current
// entry are served without a request, and concurrent calls for the same
// (key, page) share one request.
//
// A failed fetch leaves the accumulated items untouched; the error is
// returned as is and never retried.
func (c *Cache) Resolve(ctx context.Context, q domain.Query) (domain.PageResult, error) {
	key := CacheKey(q.Filters)
	page := q.Page

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || key != c.lastKey {
		if prev, ok := c.entries[c.lastKey]; ok && c.lastKey != key {
			c.logger.Debug("dropping superseded entry", "key", prev.Key, "items", len(prev.Items))
			delete(c.entries, c.lastKey)
		}
		c.gen++
		e = &entry{
			Entry: Entry{Key: key, HasMorePages: true},
			gen:   c.gen,
			pages: make(map[int]domain.PageResult),
		}
		c.entries[key] = e
		c.lastKey = key
		page = 1
	}
	if page < 1 {
		page = 1
	}
	if cached, ok := e.pages[page]; ok {
		c.mu.Unlock()
		c.logger.Debug("cache hit", "key", key, "page", page)
		return cached, nil
	}
	c.mu.Unlock()

	filters := q.Filters.Normalize()
	ch := c.group.DoChan(pageKey(key+"@"+strconv.FormatUint(e.gen, 10), page), func() (any, error) {
		return c.fetch(ctx, e, domain.Query{Page: page, Filters: filters})
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.PageResult{}, res.Err
		}
		if res.Shared {
			c.logger.Debug("joined in-flight request", "key", key, "page", page)
		}
		return res.Val.(domain.PageResult), nil
	case <-ctx.Done():
		return domain.PageResult{}, ctx.Err()
	}
}

// fetch performs the network call for e and merges the response. The
// request is detached from the caller's cancellation because other callers
// may have joined it; the HTTP client's timeout bounds it instead.
func (c *Cache) fetch(ctx context.Context, e *entry, q domain.Query) (domain.PageResult, error) {
	c.mu.Lock()
	e.inflight++
	e.Loading = true
	c.mu.Unlock()

	res, err := c.repo.FetchMoviesPage(context.WithoutCancel(ctx), q)

	c.mu.Lock()
	defer c.mu.Unlock()

	e.inflight--
	e.Loading = e.inflight > 0

	if err != nil {
		e.Err = err
		c.logger.Error("failed to fetch page", "key", e.Key, "page", q.Page, "error", err)
		return domain.PageResult{}, err
	}

	c.mergeLocked(e, res)
	return res, nil
}

// mergeLocked applies the merge rule to e. Only page 1 or the page directly
// after the last merged one is accepted, which keeps pages in request order.
func (c *Cache) mergeLocked(e *entry, res domain.PageResult) {
	switch {
	case res.Page <= 1:
		e.pages = map[int]domain.PageResult{1: res}
	case res.Page == e.LastPage+1:
		e.pages[res.Page] = res
	default:
		c.logger.Warn("page out of order, not merged", "key", e.Key, "page", res.Page, "lastPage", e.LastPage)
		return
	}

	e.Items = MergePage(e.Items, res)
	e.LastPage = res.Page
	e.TotalPages = res.TotalPages
	e.HasMorePages = res.HasMorePages()
	e.Err = nil

	c.logger.Debug("merged page", "key", e.Key, "page", res.Page, "totalPages", res.TotalPages, "items", len(e.Items))
}

// Snapshot returns a copy of the entry for a filter set
func (c *Cache) Snapshot(f domain.Filters) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[CacheKey(f)]
	if !ok {
		return Entry{}, false
	}
	snap := e.Entry
	snap.Items = slices.Clone(e.Items)
	return snap, true
}

// Invalidate drops every entry. In-flight requests finish but are not merged.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.lastKey = ""
	c.logger.Info("invalidated catalog cache")
}
