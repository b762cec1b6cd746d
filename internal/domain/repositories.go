package domain

import (
	"context"
)

// CatalogRepository provides read-only access to the remote movie catalog
type CatalogRepository interface {
	// FetchConfiguration returns the image base URL
	FetchConfiguration(ctx context.Context) (Configuration, error)

	// FetchMoviesPage returns one page of discover results for the query
	FetchMoviesPage(ctx context.Context, q Query) (PageResult, error)

	// SearchKeywords returns keywords matching the text
	SearchKeywords(ctx context.Context, text string) ([]Keyword, error)

	// FetchGenres returns the movie genre list
	FetchGenres(ctx context.Context) ([]Genre, error)
}

// PageResolver returns pages of discover results, possibly from cache.
type PageResolver interface {
	Resolve(ctx context.Context, q Query) (PageResult, error)
}
