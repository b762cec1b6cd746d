package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for bordered columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// NoResultsText is shown when the first page of a query is empty
const NoResultsText = "No movies were found that match your query."

// MovieList is a scrollable list of accumulated movies. A sentinel row
// follows the last movie while more pages exist; scrolling it into view
// emits SentinelMsg.
type MovieList struct {
	movies  []domain.MovieSummary
	hasMore bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading      bool
	spinnerFrame int
	noResults    bool

	sentinel *Sentinel

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into movies
}

// NewMovieList creates an empty list that expects more pages
func NewMovieList(title string, opts SentinelOptions) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &MovieList{
		title:       title,
		hasMore:     true,
		sentinel:    NewSentinel(opts),
		filterInput: ti,
	}
}

// Update handles navigation and filter input. The returned command may
// carry a SentinelMsg.
func (c *MovieList) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, MovieListKeys.Escape):
				c.clearFilter()
				return c.Observe()
			case key.Matches(keyMsg, MovieListKeys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return c.Observe()
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return tea.Batch(cmd, c.Observe())
	}

	if !isKey {
		return nil
	}

	// Navigating filter results
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, MovieListKeys.Escape):
			c.clearFilter()
			return c.Observe()
		case key.Matches(keyMsg, MovieListKeys.Filter):
			c.filterInput.Focus()
			return nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, MovieListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, MovieListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, MovieListKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, MovieListKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, MovieListKeys.HalfDown):
		c.cursor = min(c.cursor+c.maxVisible/2, count-1)
	case key.Matches(keyMsg, MovieListKeys.HalfUp):
		c.cursor = max(c.cursor-c.maxVisible/2, 0)
	case key.Matches(keyMsg, MovieListKeys.PageDown):
		c.cursor = min(c.cursor+c.maxVisible, count-1)
	case key.Matches(keyMsg, MovieListKeys.PageUp):
		c.cursor = max(c.cursor-c.maxVisible, 0)
	default:
		return nil
	}

	c.ensureVisible()
	return c.Observe()
}

func (c *MovieList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(c.renderContent())
}

// SetSize resizes the list and re-observes the sentinel
func (c *MovieList) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
	return c.Observe()
}

func (c *MovieList) Width() int {
	return c.width
}

func (c *MovieList) Height() int {
	return c.height
}

func (c *MovieList) SetFocused(focused bool) {
	c.focused = focused
}

func (c *MovieList) IsFocused() bool {
	return c.focused
}

func (c *MovieList) SetTitle(title string) {
	c.title = title
}

// SetItems replaces the accumulated movies. The cursor is kept so pages
// appended below do not move the selection.
func (c *MovieList) SetItems(movies []domain.MovieSummary, hasMore bool) tea.Cmd {
	c.movies = movies
	c.hasMore = hasMore
	c.noResults = false
	if c.filterActive {
		c.applyFilter()
	}
	c.cursor = min(c.cursor, max(c.ItemCount()-1, 0))
	c.ensureVisible()
	return c.Observe()
}

// Reset empties the list for a new query
func (c *MovieList) Reset() {
	c.movies = nil
	c.hasMore = true
	c.noResults = false
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
	c.sentinel.Hide()
}

func (c *MovieList) SetLoading(loading bool) {
	c.loading = loading
}

func (c *MovieList) IsLoading() bool {
	return c.loading
}

// SetNoResults shows the empty-query message instead of the list
func (c *MovieList) SetNoResults(noResults bool) {
	c.noResults = noResults
}

// SetSpinnerFrame updates the spinner animation frame
func (c *MovieList) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// ItemCount returns the number of movies shown (after filtering)
func (c *MovieList) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.movies)
}

// SelectedMovie returns the movie under the cursor
func (c *MovieList) SelectedMovie() (domain.MovieSummary, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.MovieSummary{}, false
	}
	return c.movies[c.mapIndex(c.cursor)], true
}

// SelectedIndex returns the cursor position
func (c *MovieList) SelectedIndex() int {
	return c.cursor
}

// Observe re-checks the sentinel against the visible rows
func (c *MovieList) Observe() tea.Cmd {
	if !c.showSentinel() {
		c.sentinel.Hide()
		return nil
	}
	if c.maxVisible <= 0 {
		return nil
	}

	c.sentinel.SetPosition(c.ItemCount(), 1)
	return c.sentinel.Observe(Viewport{Top: c.offset, Height: c.maxVisible})
}

// SentinelVisible reports whether the sentinel is currently in view
func (c *MovieList) SentinelVisible() bool {
	return c.showSentinel() && c.sentinel.IsIntersecting()
}

// Disconnect stops the sentinel for good
func (c *MovieList) Disconnect() {
	c.sentinel.Disconnect()
}

// ToggleFilter activates the filter input
func (c *MovieList) ToggleFilter() tea.Cmd {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
	return c.Observe()
}

// IsFiltering returns true if filter mode is active
func (c *MovieList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *MovieList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// Internal methods

// showSentinel reports whether the sentinel row is part of the list.
// Local filtering hides it: the filtered view should not page.
func (c *MovieList) showSentinel() bool {
	return c.hasMore && !c.filterActive && !c.noResults
}

func (c *MovieList) rowCount() int {
	rows := c.ItemCount()
	if c.showSentinel() {
		rows++
	}
	return rows
}

func (c *MovieList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *MovieList) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}

	// At the last movie, keep the sentinel row in view as well
	last := c.cursor
	if c.showSentinel() && c.cursor >= c.ItemCount()-1 {
		last = c.ItemCount()
	}

	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if last >= c.offset+c.maxVisible {
		c.offset = last - c.maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c *MovieList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *MovieList) applyFilter() {
	query := c.filterInput.Value()
	changed := query != c.filterQuery
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(c.movies))
	for i, m := range c.movies {
		lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	// New query: jump to the best match
	if changed {
		c.cursor = 0
		c.offset = 0
	}
}

func (c *MovieList) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *MovieList) renderContent() string {
	// Content width = column width - border
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.ItemCount()

	if c.loading && count == 0 {
		loadingLine := styles.Spinner(c.spinnerFrame) + styles.DimStyle.Render(" Loading...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	if c.noResults {
		return titleLine + "\n" + " " + "\n" + styles.DimStyle.Render(NoResultsText) + "\n" + " "
	}

	if count == 0 && c.filterActive && c.filterQuery != "" {
		content := titleLine + "\n" + " " + "\n" + styles.DimStyle.Render("No matches") + "\n" + " "
		return content + "\n" + c.renderFilterBar()
	}

	rows := c.rowCount()
	end := min(c.offset+c.maxVisible, rows)

	var lines []string
	for i := c.offset; i < end; i++ {
		if i == count {
			lines = append(lines, c.renderSentinel(itemWidth))
			continue
		}
		lines = append(lines, c.renderMovieItem(c.movies[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// ALWAYS reserve space for header and footer to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < rows {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *MovieList) renderMovieItem(movie domain.MovieSummary, selected bool, width int) string {
	accent := styles.Accent
	popularity := fmt.Sprintf("%7s", movie.FormattedPopularity())

	// Available space: width - popularity(7) - space(1) - margins(2)
	title := styles.Truncate(movie.Title, max(width-10, 5))

	parts := []styles.RowPart{
		{Text: popularity, Foreground: &accent},
		{Text: " " + title, Foreground: nil},
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *MovieList) renderSentinel(width int) string {
	if c.loading {
		return " " + styles.Spinner(c.spinnerFrame) + styles.DimStyle.Render(" Loading more...")
	}
	dots := strings.Repeat(styles.SentinelChar+" ", 3)
	return " " + styles.DimStyle.Render(styles.Truncate(dots, width-2))
}

func (c *MovieList) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.movies)))
	}

	return input + countStr
}
