package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Viewport is the visible window of a scrolling container, in rows
type Viewport struct {
	Top    int // first visible row
	Height int // number of visible rows
}

// SentinelOptions configures when a sentinel counts as visible
type SentinelOptions struct {
	// Threshold is the fraction of the sentinel that must be inside the
	// viewport, in [0, 1]. 0 means any overlap.
	Threshold float64

	// RootMargin grows (or, when negative, shrinks) the viewport on both
	// ends before intersecting.
	RootMargin int
}

// DefaultSentinelOptions requires the whole sentinel to be visible
func DefaultSentinelOptions() SentinelOptions {
	return SentinelOptions{Threshold: 1.0}
}

// SentinelMsg is emitted when the sentinel scrolls into view
type SentinelMsg struct {
	Ratio float64
}

// Sentinel watches a marker row at the end of a list and reports when it
// becomes visible. Only the transition into view emits a message; leaving
// the view updates state silently.
type Sentinel struct {
	opts SentinelOptions

	row    int
	height int

	intersecting bool
	ratio        float64
	disconnected bool
}

// NewSentinel creates a sentinel of height 1 at row 0
func NewSentinel(opts SentinelOptions) *Sentinel {
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	if opts.Threshold > 1 {
		opts.Threshold = 1
	}
	return &Sentinel{opts: opts, height: 1}
}

// SetPosition places the sentinel in content rows
func (s *Sentinel) SetPosition(row, height int) {
	if height < 1 {
		height = 1
	}
	s.row = row
	s.height = height
}

// Observe recomputes visibility against root. It returns a command
// emitting SentinelMsg when the sentinel has just entered the view.
func (s *Sentinel) Observe(root Viewport) tea.Cmd {
	if s.disconnected {
		return nil
	}

	top := root.Top - s.opts.RootMargin
	bottom := root.Top + root.Height + s.opts.RootMargin

	visible := min(s.row+s.height, bottom) - max(s.row, top)
	ratio := 0.0
	if visible > 0 {
		ratio = float64(visible) / float64(s.height)
	}

	was := s.intersecting
	s.ratio = ratio
	s.intersecting = ratio > 0 && ratio >= s.opts.Threshold

	if s.intersecting && !was {
		return func() tea.Msg {
			return SentinelMsg{Ratio: ratio}
		}
	}
	return nil
}

// Hide marks the sentinel as out of view without emitting, for when it
// is not rendered at all
func (s *Sentinel) Hide() {
	s.intersecting = false
	s.ratio = 0
}

// IsIntersecting reports the latest observed state
func (s *Sentinel) IsIntersecting() bool {
	return !s.disconnected && s.intersecting
}

// Ratio returns the latest visible fraction
func (s *Sentinel) Ratio() float64 {
	return s.ratio
}

// Disconnect stops observation for good
func (s *Sentinel) Disconnect() {
	s.disconnected = true
	s.intersecting = false
}
