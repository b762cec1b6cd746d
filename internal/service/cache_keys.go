package service

// Cache key prefixes for lookup results
const (
	// PrefixGenres is the cache key for the genre list
	PrefixGenres = "genres"

	// PrefixKeywords is the prefix for keyword search results (keywords:{lowercased text})
	PrefixKeywords = "keywords:"
)
