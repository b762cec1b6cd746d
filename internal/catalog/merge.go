package catalog

import (
	"slices"

	"github.com/mmcdole/flick/internal/domain"
)

// MergePage folds a fetched page into an accumulated item sequence.
// Page 1 replaces the sequence (a re-applied filter starts over); later
// pages are appended in response order. The input slice is never mutated.
func MergePage(items []domain.MovieSummary, page domain.PageResult) []domain.MovieSummary {
	if page.Page <= 1 {
		return slices.Clone(page.Items)
	}
	merged := make([]domain.MovieSummary, 0, len(items)+len(page.Items))
	merged = append(merged, items...)
	return append(merged, page.Items...)
}
