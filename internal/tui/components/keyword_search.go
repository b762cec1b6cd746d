package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet window before a keyword search is sent
const DefaultDebounce = time.Second

// KeywordDebounceMsg fires when the quiet window after a keystroke ends
type KeywordDebounceMsg struct {
	Seq   int
	Query string
}

// KeywordSearch debounces search-as-you-type. Every change bumps a
// sequence number; only the tick carrying the latest number is acted on.
type KeywordSearch struct {
	delay time.Duration
	seq   int
	query string
}

// NewKeywordSearch creates a debouncer with the given quiet window
func NewKeywordSearch(delay time.Duration) KeywordSearch {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return KeywordSearch{delay: delay}
}

// Changed records new input and schedules a debounce tick. Blank input
// schedules nothing, but still invalidates pending ticks.
func (k *KeywordSearch) Changed(query string) tea.Cmd {
	k.seq++
	k.query = query

	if strings.TrimSpace(query) == "" {
		return nil
	}

	seq := k.seq
	return tea.Tick(k.delay, func(time.Time) tea.Msg {
		return KeywordDebounceMsg{Seq: seq, Query: query}
	})
}

// Ready reports whether msg is the tick for the latest input and returns
// the query to search for
func (k KeywordSearch) Ready(msg KeywordDebounceMsg) (string, bool) {
	if msg.Seq != k.seq {
		return "", false
	}
	query := strings.TrimSpace(msg.Query)
	return query, query != ""
}

// Current reports whether results tagged with seq are still wanted
func (k KeywordSearch) Current(seq int) bool {
	return seq == k.seq
}

// Seq returns the latest sequence number
func (k KeywordSearch) Seq() int {
	return k.seq
}
