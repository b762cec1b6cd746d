package components

import (
	"strings"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// Details shows the selected movie next to the list
type Details struct {
	movie    *domain.MovieSummary
	imageURL string
	width    int
	height   int
}

func NewDetails() Details {
	return Details{}
}

// SetMovie sets the movie and its resolved backdrop URL. An empty URL
// means no image is available.
func (d *Details) SetMovie(movie *domain.MovieSummary, imageURL string) {
	d.movie = movie
	d.imageURL = imageURL
}

func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d Details) HasMovie() bool {
	return d.movie != nil
}

func (d Details) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(d.renderContent())
}

func (d Details) renderContent() string {
	// Border takes 2 chars, leave 1 char margin
	width := max(d.width-3, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", width))

	if d.movie == nil {
		return titleLine + "\n\n" + styles.DimStyle.Render("No movie selected")
	}

	lines := []string{titleLine, ""}
	for _, l := range styles.Wrap(d.movie.Title, width) {
		lines = append(lines, styles.TitleStyle.Render(l))
	}
	lines = append(lines,
		styles.SubtitleStyle.Render("Popularity ")+styles.AccentStyle.Render(d.movie.FormattedPopularity()),
		"",
	)

	// Overview gets whatever is left above the image line
	budget := max(d.height-BorderHeight-len(lines)-2, 1)
	overview := styles.Wrap(d.movie.Overview, width)
	if len(overview) == 0 {
		overview = []string{styles.DimStyle.Render("No overview")}
	}
	if len(overview) > budget {
		overview = overview[:budget]
		overview[budget-1] = styles.Truncate(overview[budget-1]+"...", width)
	}
	for _, l := range overview {
		lines = append(lines, styles.SubtitleStyle.Render(l))
	}

	lines = append(lines, "")
	if d.imageURL != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(d.imageURL, width)))
	} else {
		lines = append(lines, styles.DimStyle.Render("(no image)"))
	}

	return strings.Join(lines, "\n")
}
