package domain

import (
	"fmt"
	"slices"
)

// MovieSummary is a single movie as returned by the discover endpoint.
// Immutable once received.
type MovieSummary struct {
	ID           int     // Remote catalog identifier
	Title        string  // Display title
	Overview     string  // Plot synopsis
	Popularity   float64 // Remote popularity score
	BackdropPath string  // Relative image path, empty when the movie has no backdrop
}

// FormattedPopularity returns the popularity score for display
func (m MovieSummary) FormattedPopularity() string {
	return fmt.Sprintf("%.1f", m.Popularity)
}

// HasBackdrop reports whether the movie carries a backdrop image path
func (m MovieSummary) HasBackdrop() bool {
	return m.BackdropPath != ""
}

// Genre is a movie genre from the genre lookup endpoint
type Genre struct {
	ID   int
	Name string
}

// Keyword is a keyword from the keyword search endpoint
type Keyword struct {
	ID   int
	Name string
}

// Filters restricts a discover query. Both fields are treated as sets:
// order and duplicates carry no meaning.
type Filters struct {
	Keywords []int
	Genres   []int
}

// IsEmpty returns true if no filter is set
func (f Filters) IsEmpty() bool {
	return len(f.Keywords) == 0 && len(f.Genres) == 0
}

// Normalize returns a copy with sorted, de-duplicated ids.
func (f Filters) Normalize() Filters {
	return Filters{
		Keywords: uniqueSorted(f.Keywords),
		Genres:   uniqueSorted(f.Genres),
	}
}

// Equal reports whether both filter sets select the same movies.
func (f Filters) Equal(other Filters) bool {
	a, b := f.Normalize(), other.Normalize()
	return slices.Equal(a.Keywords, b.Keywords) && slices.Equal(a.Genres, b.Genres)
}

func uniqueSorted(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// Query describes one page of a discover request
type Query struct {
	Page    int // 1-based
	Filters Filters
}

// PageResult is one page of a paginated response
type PageResult struct {
	Items      []MovieSummary
	Page       int
	TotalPages int
}

// HasMorePages returns true if pages exist after this one
func (p PageResult) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// IsValid returns true if the page number is within the reported bounds
func (p PageResult) IsValid() bool {
	return p.Page >= 1 && p.Page <= p.TotalPages
}

// Configuration is the static server metadata needed to build image URLs
type Configuration struct {
	ImageBaseURL string
}

// User is the client-side session identity. The zero value is the anonymous user.
type User struct {
	Name string
}

// Anonymous is the user shown when nobody is logged in
var Anonymous = User{}

// IsAnonymous returns true if nobody is logged in
func (u User) IsAnonymous() bool {
	return u.Name == ""
}

// DisplayName returns the name shown in the header
func (u User) DisplayName() string {
	if u.IsAnonymous() {
		return "Guest"
	}
	return u.Name
}
