package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMovies(n int) []domain.MovieSummary {
	movies := make([]domain.MovieSummary, n)
	for i := range movies {
		movies[i] = domain.MovieSummary{ID: i + 1, Title: fmt.Sprintf("Movie %02d", i+1), Popularity: float64(100 - i)}
	}
	return movies
}

// newTestList returns a focused list showing 5 rows
func newTestList() *MovieList {
	l := NewMovieList("Discover", DefaultSentinelOptions())
	l.SetFocused(true)
	l.SetSize(60, 10)
	return l
}

func TestMovieListEmptyListShowsSentinel(t *testing.T) {
	l := NewMovieList("Discover", DefaultSentinelOptions())
	l.SetFocused(true)

	cmd := l.SetSize(60, 10)
	require.NotNil(t, cmd)
	_, ok := cmd().(SentinelMsg)
	assert.True(t, ok)

	// a short page keeps it in view without a new edge
	assert.Nil(t, l.SetItems(testMovies(3), true))
	assert.True(t, l.SentinelVisible())

	// a long page pushes it out
	assert.Nil(t, l.SetItems(testMovies(20), true))
	assert.False(t, l.SentinelVisible())
}

func TestMovieListScrollToEndTriggersSentinel(t *testing.T) {
	l := newTestList()
	assert.Nil(t, l.SetItems(testMovies(20), true))
	assert.False(t, l.SentinelVisible())

	cmd := l.Update(runeKey("G"))
	require.NotNil(t, cmd)
	_, ok := cmd().(SentinelMsg)
	assert.True(t, ok)

	movie, ok := l.SelectedMovie()
	require.True(t, ok)
	assert.Equal(t, 20, movie.ID)
}

func TestMovieListSetItemsKeepsCursor(t *testing.T) {
	l := newTestList()
	l.SetItems(testMovies(5), true)
	l.Update(runeKey("j"))
	l.Update(runeKey("j"))

	l.SetItems(testMovies(10), true)
	assert.Equal(t, 2, l.SelectedIndex())
}

func TestMovieListNoSentinelOnLastPage(t *testing.T) {
	l := newTestList()
	assert.Nil(t, l.SetItems(testMovies(2), false))
	assert.False(t, l.SentinelVisible())
}

func TestMovieListFilterHidesSentinel(t *testing.T) {
	l := newTestList()
	l.SetItems(testMovies(3), true)
	require.True(t, l.SentinelVisible())

	l.ToggleFilter()
	assert.False(t, l.SentinelVisible())
	typeText(l.Update, "02")
	assert.Equal(t, 1, l.ItemCount())
	movie, ok := l.SelectedMovie()
	require.True(t, ok)
	assert.Equal(t, 2, movie.ID)

	cmd := l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.ItemCount())
	require.NotNil(t, cmd, "clearing the filter re-arms the sentinel")
}

func TestMovieListNoResults(t *testing.T) {
	l := NewMovieList("Discover", DefaultSentinelOptions())
	l.SetSize(80, 10)
	l.SetItems(nil, false)
	l.SetNoResults(true)

	assert.Contains(t, l.View(), NoResultsText)
	assert.False(t, l.SentinelVisible())

	l.Reset()
	assert.NotContains(t, l.View(), NoResultsText)
	assert.Equal(t, 0, l.ItemCount())
}

func TestMovieListDisconnect(t *testing.T) {
	l := newTestList()
	l.Disconnect()
	assert.Nil(t, l.SetItems(testMovies(3), true))
	assert.False(t, l.SentinelVisible())
}
