package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGenres = []domain.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 878, Name: "Science Fiction"},
}

func newTestPanel() *FilterPanel {
	p := NewFilterPanel(time.Millisecond)
	p.SetGenres(testGenres)
	p.SetSize(40, 30)
	p.SetFocused(true)
	return p
}

var (
	spaceKey     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tabKey       = tea.KeyMsg{Type: tea.KeyTab}
	enterKey     = tea.KeyMsg{Type: tea.KeyEnter}
	downKey      = tea.KeyMsg{Type: tea.KeyDown}
	backspaceKey = tea.KeyMsg{Type: tea.KeyBackspace}
	applyKey     = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func applied(t *testing.T, cmd tea.Cmd) domain.Filters {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ApplyFiltersMsg)
	require.True(t, ok)
	return msg.Filters
}

func TestFilterPanelToggleAndApply(t *testing.T) {
	p := newTestPanel()
	assert.False(t, p.Dirty())
	assert.Nil(t, p.Update(applyKey), "clean form does not apply")

	p.Update(downKey)
	p.Update(spaceKey)
	assert.True(t, p.Dirty())

	f := applied(t, p.Update(applyKey))
	assert.Equal(t, []int{12}, f.Genres)
	assert.False(t, p.Dirty())
	assert.Nil(t, p.Update(applyKey))

	// toggling back off is a change too
	p.Update(spaceKey)
	f = applied(t, p.Update(applyKey))
	assert.True(t, f.IsEmpty())
}

func TestFilterPanelNarrowGenres(t *testing.T) {
	p := newTestPanel()
	typeText(p.Update, "scifi")
	require.Len(t, p.visible, 1)

	p.Update(spaceKey)
	assert.Equal(t, []int{878}, p.Filters().Genres)
}

func TestFilterGenres(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"blank returns all", "  ", []int{28, 12, 16, 878}},
		{"case insensitive", "ACTION", []int{28}},
		{"fuzzy subsequence", "scifi", []int{878}},
		{"no match", "western", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterGenres(testGenres, tt.text)
			ids := make([]int, len(got))
			for i, g := range got {
				ids[i] = g.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterPanelKeywordChips(t *testing.T) {
	p := newTestPanel()
	p.Update(tabKey)

	cmds := typeText(p.Update, "tr")
	require.Len(t, cmds, 2)
	require.NotNil(t, cmds[1])

	_, _, ok := p.HandleDebounce(KeywordDebounceMsg{Seq: 1, Query: "t"})
	assert.False(t, ok)
	query, seq, ok := p.HandleDebounce(KeywordDebounceMsg{Seq: 2, Query: "tr"})
	require.True(t, ok)
	assert.Equal(t, "tr", query)

	keywords := []domain.Keyword{{ID: 4379, Name: "time travel"}, {ID: 9882, Name: "space"}}
	p.SetSuggestions(seq-1, []domain.Keyword{{ID: 1, Name: "stale"}})
	assert.Empty(t, p.suggestions)
	p.SetSuggestions(seq, keywords)
	require.Len(t, p.suggestions, 2)

	p.Update(downKey)
	assert.Nil(t, p.Update(enterKey))
	assert.Equal(t, []domain.Keyword{{ID: 9882, Name: "space"}}, p.Chips())
	assert.Len(t, p.suggestions, 1, "chosen keyword leaves the suggestions")

	p.Update(enterKey)
	assert.Equal(t, []int{4379, 9882}, p.Filters().Keywords)

	// backspace edits the text first, then removes chips
	p.Update(backspaceKey)
	p.Update(backspaceKey)
	require.Len(t, p.Chips(), 2)
	p.Update(backspaceKey)
	assert.Equal(t, []domain.Keyword{{ID: 9882, Name: "space"}}, p.Chips())

	f := applied(t, p.Update(enterKey))
	assert.Equal(t, []int{9882}, f.Keywords)
}

func TestFilterPanelApplyField(t *testing.T) {
	p := newTestPanel()
	p.Update(spaceKey)
	p.Update(tabKey)
	p.Update(tabKey)

	f := applied(t, p.Update(enterKey))
	assert.Equal(t, []int{28}, f.Genres)
	assert.Contains(t, p.View(), "Apply")
}

func TestFilterPanelIgnoresKeysWhenBlurred(t *testing.T) {
	p := newTestPanel()
	p.SetFocused(false)
	assert.Nil(t, p.Update(spaceKey))
	assert.False(t, p.Dirty())
}
