package catalog

import (
	"strconv"
	"strings"

	"github.com/mmcdole/flick/internal/domain"
)

// Cache key prefixes
const (
	// PrefixDiscover is the prefix for accumulated discover entries (discover:{filters})
	PrefixDiscover = "discover:"
)

// CacheKey derives the cache key for a filter set. The page number is
// deliberately excluded: every page of one filter set accumulates into a
// single entry.
func CacheKey(f domain.Filters) string {
	n := f.Normalize()

	var b strings.Builder
	b.WriteString(PrefixDiscover)
	b.WriteString("k=")
	writeIDs(&b, n.Keywords)
	b.WriteString(";g=")
	writeIDs(&b, n.Genres)
	return b.String()
}

// pageKey identifies one in-flight page request
func pageKey(key string, page int) string {
	return key + "#" + strconv.Itoa(page)
}

func writeIDs(b *strings.Builder, ids []int) {
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
}
