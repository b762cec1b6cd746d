package components

import (
	"testing"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetailsView(t *testing.T) {
	d := NewDetails()
	d.SetSize(60, 20)
	assert.Contains(t, d.View(), "No movie selected")

	movie := domain.MovieSummary{ID: 1, Title: "Arrival", Overview: "Linguist meets heptapods.", Popularity: 81.25}
	d.SetMovie(&movie, "")
	view := d.View()
	assert.True(t, d.HasMovie())
	assert.Contains(t, view, "Arrival")
	assert.Contains(t, view, "81.2")
	assert.Contains(t, view, "(no image)")

	d.SetMovie(&movie, "https://image.tmdb.org/t/p/w780/x.jpg")
	assert.Contains(t, d.View(), "/x.jpg")
}
