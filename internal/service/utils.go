package service

import (
	"context"
)

// fetchPages is a private helper that walks 1-based pages in order until
// the last page or maxPages is reached. maxPages <= 0 means no limit.
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, int, error),
	maxPages int,
	onProgress func(page, totalPages int),
) ([]T, error) {
	var all []T

	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, totalPages, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if onProgress != nil {
			onProgress(page, totalPages)
		}

		if page >= totalPages {
			break
		}
	}

	return all, nil
}
