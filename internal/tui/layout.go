package tui

import tea "github.com/charmbracelet/bubbletea"

// Layout proportions
const (
	FilterPanelPercent = 30
	DetailsPercent     = 30

	MinColumnWidth = 20

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	filterWidth  int // 0 if not shown
	listWidth    int
	detailsWidth int // 0 if not shown
}

// calculateColumnLayout splits the width between filter panel, list and
// details. Side columns are dropped when the list would get too narrow.
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	layout := columnLayout{}

	if m.ShowFilters {
		layout.filterWidth = max(availableWidth*FilterPanelPercent/100, MinColumnWidth)
	}
	if m.ShowDetails {
		layout.detailsWidth = max(availableWidth*DetailsPercent/100, MinColumnWidth)
	}

	layout.listWidth = availableWidth - layout.filterWidth - layout.detailsWidth
	if layout.listWidth < MinColumnWidth && layout.detailsWidth > 0 {
		layout.listWidth += layout.detailsWidth
		layout.detailsWidth = 0
	}
	if layout.listWidth < MinColumnWidth && layout.filterWidth > 0 {
		layout.listWidth += layout.filterWidth
		layout.filterWidth = 0
	}

	return layout
}

// updateLayout resizes components to the window. The returned command may
// carry a SentinelMsg when resizing reveals the end of the list.
func (m *Model) updateLayout() tea.Cmd {
	if m.Width == 0 || m.Height == 0 {
		return nil
	}

	contentHeight := m.Height - ChromeHeight
	layout := m.calculateColumnLayout(m.Width)
	m.layout = layout

	if layout.filterWidth > 0 {
		m.FilterPanel.SetSize(layout.filterWidth, contentHeight)
	}
	if layout.detailsWidth > 0 {
		m.Details.SetSize(layout.detailsWidth, contentHeight)
	}
	return m.List.SetSize(layout.listWidth, contentHeight)
}
