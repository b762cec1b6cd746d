package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/flick/internal/domain"
)

// RankKeywords orders keyword suggestions by how well they match text.
// The remote search already filters; this only reorders.
func RankKeywords(keywords []domain.Keyword, text string) []domain.Keyword {
	if len(keywords) == 0 {
		return keywords
	}

	query := strings.ToLower(strings.TrimSpace(text))

	type rankedKeyword struct {
		keyword domain.Keyword
		score   int
	}

	ranked := make([]rankedKeyword, 0, len(keywords))
	for _, kw := range keywords {
		ranked = append(ranked, rankedKeyword{
			keyword: kw,
			score:   calculateMatchScore(strings.ToLower(kw.Name), query),
		})
	}

	// Stable so equal scores keep the server's order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Keyword, len(ranked))
	for i, r := range ranked {
		results[i] = r.keyword
	}
	return results
}

// calculateMatchScore calculates a match score for ranking
// Lower score = better match
func calculateMatchScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
