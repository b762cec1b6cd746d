package components

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// ApplyFiltersMsg is emitted when the user applies a changed filter form
type ApplyFiltersMsg struct {
	Filters domain.Filters
}

type filterField int

const (
	fieldGenres filterField = iota
	fieldKeywords
	fieldApply
	fieldCount
)

// filterPanelFixedLines counts the lines that are not genre rows or
// keyword suggestions
const filterPanelFixedLines = 8

// FilterPanel is the genre checklist and keyword picker. The form is
// dirty while its selection differs from the last applied filters.
type FilterPanel struct {
	genres         []domain.Genre
	visible        []domain.Genre // genres narrowed by genreInput
	selectedGenres map[int]bool
	genreCursor    int
	genreOffset    int
	genreInput     textinput.Model

	keywordInput  textinput.Model
	search        KeywordSearch
	searching     bool
	suggestions   []domain.Keyword
	suggestCursor int
	chips         []domain.Keyword

	applied domain.Filters
	field   filterField

	width   int
	height  int
	focused bool
}

// NewFilterPanel creates an empty panel
func NewFilterPanel(debounce time.Duration) *FilterPanel {
	gi := textinput.New()
	gi.Placeholder = "narrow genres..."
	gi.Prompt = "  "
	gi.PromptStyle = styles.FilterPromptStyle
	gi.TextStyle = styles.FilterStyle
	gi.PlaceholderStyle = styles.DimStyle

	ki := textinput.New()
	ki.Placeholder = "search keywords..."
	ki.Prompt = "> "
	ki.PromptStyle = styles.FilterPromptStyle
	ki.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ki.PlaceholderStyle = styles.DimStyle
	ki.CharLimit = 64

	return &FilterPanel{
		selectedGenres: make(map[int]bool),
		genreInput:     gi,
		keywordInput:   ki,
		search:         NewKeywordSearch(debounce),
	}
}

// SetGenres sets the genre checklist
func (p *FilterPanel) SetGenres(genres []domain.Genre) {
	p.genres = genres
	p.narrowGenres()
}

// SetFocused focuses the panel and its active input
func (p *FilterPanel) SetFocused(focused bool) {
	p.focused = focused
	p.focusField()
}

func (p *FilterPanel) IsFocused() bool {
	return p.focused
}

func (p *FilterPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.ensureGenreVisible()
}

// Filters returns the filters currently selected in the form
func (p *FilterPanel) Filters() domain.Filters {
	var genres []int
	for id, on := range p.selectedGenres {
		if on {
			genres = append(genres, id)
		}
	}

	keywords := make([]int, len(p.chips))
	for i, kw := range p.chips {
		keywords[i] = kw.ID
	}

	return domain.Filters{Keywords: keywords, Genres: genres}.Normalize()
}

// Dirty reports whether the form differs from the applied filters
func (p *FilterPanel) Dirty() bool {
	return !p.Filters().Equal(p.applied)
}

// Chips returns the selected keywords in selection order
func (p *FilterPanel) Chips() []domain.Keyword {
	return p.chips
}

// HandleDebounce decides whether a debounce tick should issue a search.
// It returns the query and the sequence number to tag the results with.
func (p *FilterPanel) HandleDebounce(msg KeywordDebounceMsg) (string, int, bool) {
	query, ok := p.search.Ready(msg)
	if !ok {
		return "", 0, false
	}
	p.searching = true
	return query, msg.Seq, true
}

// SetSuggestions shows keyword search results unless newer input has
// superseded them
func (p *FilterPanel) SetSuggestions(seq int, keywords []domain.Keyword) {
	if !p.search.Current(seq) {
		return
	}
	p.searching = false
	p.suggestions = slices.DeleteFunc(slices.Clone(keywords), p.hasChip)
	p.suggestCursor = 0
}

// SearchFailed clears the searching indicator for seq
func (p *FilterPanel) SearchFailed(seq int) {
	if p.search.Current(seq) {
		p.searching = false
	}
}

// Update handles keys while the panel is focused
func (p *FilterPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, FilterPanelKeys.NextField):
		p.field = (p.field + 1) % fieldCount
		p.focusField()
		return nil
	case key.Matches(keyMsg, FilterPanelKeys.PrevField):
		p.field = (p.field + fieldCount - 1) % fieldCount
		p.focusField()
		return nil
	case key.Matches(keyMsg, FilterPanelKeys.Apply):
		return p.apply()
	}

	switch p.field {
	case fieldGenres:
		return p.updateGenres(keyMsg)
	case fieldKeywords:
		return p.updateKeywords(keyMsg)
	case fieldApply:
		if key.Matches(keyMsg, FilterPanelKeys.Select) {
			return p.apply()
		}
	}
	return nil
}

func (p *FilterPanel) updateGenres(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, FilterPanelKeys.Up):
		if p.genreCursor > 0 {
			p.genreCursor--
		}
		p.ensureGenreVisible()
		return nil
	case key.Matches(msg, FilterPanelKeys.Down):
		if p.genreCursor < len(p.visible)-1 {
			p.genreCursor++
		}
		p.ensureGenreVisible()
		return nil
	case key.Matches(msg, FilterPanelKeys.Toggle):
		if p.genreCursor < len(p.visible) {
			id := p.visible[p.genreCursor].ID
			p.selectedGenres[id] = !p.selectedGenres[id]
		}
		return nil
	case key.Matches(msg, FilterPanelKeys.Select):
		return p.apply()
	}

	before := p.genreInput.Value()
	var cmd tea.Cmd
	p.genreInput, cmd = p.genreInput.Update(msg)
	if p.genreInput.Value() != before {
		p.narrowGenres()
	}
	return cmd
}

func (p *FilterPanel) updateKeywords(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, FilterPanelKeys.Up):
		if p.suggestCursor > 0 {
			p.suggestCursor--
		}
		return nil
	case key.Matches(msg, FilterPanelKeys.Down):
		if p.suggestCursor < len(p.suggestions)-1 {
			p.suggestCursor++
		}
		return nil
	case key.Matches(msg, FilterPanelKeys.Select):
		if p.suggestCursor < len(p.suggestions) {
			p.addChip(p.suggestions[p.suggestCursor])
			return nil
		}
		return p.apply()
	case key.Matches(msg, FilterPanelKeys.RemoveChip) && p.keywordInput.Value() == "":
		if len(p.chips) > 0 {
			p.chips = p.chips[:len(p.chips)-1]
		}
		return nil
	}

	before := p.keywordInput.Value()
	var cmd tea.Cmd
	p.keywordInput, cmd = p.keywordInput.Update(msg)

	value := p.keywordInput.Value()
	if value == before {
		return cmd
	}

	if strings.TrimSpace(value) == "" {
		p.suggestions = nil
		p.searching = false
	}
	return tea.Batch(cmd, p.search.Changed(value))
}

func (p *FilterPanel) addChip(kw domain.Keyword) {
	if !p.hasChip(kw) {
		p.chips = append(p.chips, kw)
	}
	p.suggestions = slices.DeleteFunc(p.suggestions, p.hasChip)
	p.suggestCursor = min(p.suggestCursor, max(len(p.suggestions)-1, 0))
}

func (p *FilterPanel) hasChip(kw domain.Keyword) bool {
	return slices.ContainsFunc(p.chips, func(c domain.Keyword) bool { return c.ID == kw.ID })
}

func (p *FilterPanel) apply() tea.Cmd {
	if !p.Dirty() {
		return nil
	}
	f := p.Filters()
	p.applied = f
	return func() tea.Msg {
		return ApplyFiltersMsg{Filters: f}
	}
}

func (p *FilterPanel) focusField() {
	p.genreInput.Blur()
	p.keywordInput.Blur()
	if !p.focused {
		return
	}
	switch p.field {
	case fieldGenres:
		p.genreInput.Focus()
	case fieldKeywords:
		p.keywordInput.Focus()
	}
}

func (p *FilterPanel) narrowGenres() {
	p.visible = filterGenres(p.genres, p.genreInput.Value())
	p.genreCursor = min(p.genreCursor, max(len(p.visible)-1, 0))
	p.genreOffset = 0
	p.ensureGenreVisible()
}

// filterGenres narrows genres to names fuzzily containing text, best
// matches first. Blank text keeps every genre.
func filterGenres(genres []domain.Genre, text string) []domain.Genre {
	text = strings.TrimSpace(text)
	if text == "" {
		return genres
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	matches := fuzzy.RankFindNormalizedFold(text, names)
	sort.Stable(matches)

	results := make([]domain.Genre, 0, len(matches))
	for _, m := range matches {
		results = append(results, genres[m.OriginalIndex])
	}
	return results
}

func (p *FilterPanel) rowBudget() (genreRows, suggestionRows int) {
	remaining := p.height - BorderHeight - filterPanelFixedLines
	genreRows = max(remaining*3/5, 1)
	suggestionRows = max(remaining-genreRows, 0)
	return genreRows, suggestionRows
}

func (p *FilterPanel) ensureGenreVisible() {
	rows, _ := p.rowBudget()
	if p.genreCursor < p.genreOffset {
		p.genreOffset = p.genreCursor
	}
	if p.genreCursor >= p.genreOffset+rows {
		p.genreOffset = p.genreCursor - rows + 1
	}
}

// Rendering

func (p *FilterPanel) View() string {
	style := styles.InactiveBorder
	if p.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(p.width - frameW).
		Height(p.height - frameH).
		Render(p.renderContent())
}

func (p *FilterPanel) renderContent() string {
	width := max(p.width-BorderWidth, 10)
	genreRows, suggestionRows := p.rowBudget()

	var lines []string
	lines = append(lines, styles.AccentStyle.Render("Filters"))

	// Genres
	lines = append(lines, p.label("Genres", fieldGenres)+p.genreInput.View())
	end := min(p.genreOffset+genreRows, len(p.visible))
	for i := p.genreOffset; i < end; i++ {
		lines = append(lines, p.renderGenre(p.visible[i], i == p.genreCursor, width))
	}
	for i := end - p.genreOffset; i < genreRows; i++ {
		if i == 0 && len(p.visible) == 0 {
			lines = append(lines, styles.DimStyle.Render("  No genres"))
			continue
		}
		lines = append(lines, " ")
	}
	lines = append(lines, " ")

	// Keywords
	label := p.label("Keywords", fieldKeywords)
	if p.searching {
		label += styles.DimStyle.Render("searching...")
	}
	lines = append(lines, label)
	lines = append(lines, p.renderChips(width))
	lines = append(lines, p.keywordInput.View())
	for i := 0; i < suggestionRows; i++ {
		if i < len(p.suggestions) {
			selected := p.field == fieldKeywords && p.focused && i == p.suggestCursor
			lines = append(lines, p.renderSuggestion(p.suggestions[i], selected, width))
			continue
		}
		lines = append(lines, " ")
	}
	lines = append(lines, " ")

	// Apply
	lines = append(lines, p.renderApply())

	return strings.Join(lines, "\n")
}

func (p *FilterPanel) label(text string, field filterField) string {
	if p.focused && p.field == field {
		return styles.AccentStyle.Render(text) + " "
	}
	return styles.SubtitleStyle.Render(text) + " "
}

func (p *FilterPanel) renderGenre(g domain.Genre, selected bool, width int) string {
	box := styles.UncheckedChar
	boxFg := styles.DimGray
	if p.selectedGenres[g.ID] {
		box = styles.CheckedChar
		boxFg = styles.AccentAlt
	}

	parts := []styles.RowPart{
		{Text: box, Foreground: &boxFg},
		{Text: " " + styles.Truncate(g.Name, max(width-4, 5)), Foreground: nil},
	}
	return styles.RenderListRow(parts, selected && p.focused && p.field == fieldGenres, width)
}

func (p *FilterPanel) renderSuggestion(kw domain.Keyword, selected bool, width int) string {
	parts := []styles.RowPart{
		{Text: "+ " + styles.Truncate(kw.Name, max(width-4, 5)), Foreground: nil},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (p *FilterPanel) renderChips(width int) string {
	if len(p.chips) == 0 {
		return styles.DimStyle.Render("  no keywords")
	}

	line := " "
	used := 1
	for i, kw := range p.chips {
		chip := styles.BadgeStyle.Render(styles.Truncate(kw.Name, 16))
		rest := len(p.chips) - i
		// leave room for a "+N" overflow marker
		if used+lipgloss.Width(chip)+1 > width-4 && rest > 0 {
			return line + styles.DimStyle.Render(fmt.Sprintf("+%d", rest))
		}
		line += chip + " "
		used += lipgloss.Width(chip) + 1
	}
	return line
}

func (p *FilterPanel) renderApply() string {
	text := "Apply"
	if !p.Dirty() {
		return " " + styles.DimBadgeStyle.Render(text)
	}
	if p.focused && p.field == fieldApply {
		return styles.AccentStyle.Render(">") + styles.ButtonStyle.Render(text)
	}
	return " " + styles.ButtonStyle.Render(text)
}
