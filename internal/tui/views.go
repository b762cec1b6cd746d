package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	}

	var columns []string
	if m.layout.filterWidth > 0 {
		columns = append(columns, m.FilterPanel.View())
	}
	columns = append(columns, m.List.View())
	if m.layout.detailsWidth > 0 {
		columns = append(columns, m.Details.View())
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.renderFooter(),
	)

	if m.InputModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while a page loads, otherwise the status message
	var left string
	if m.Catalog.Loading() {
		left = styles.Spinner(m.SpinnerFrame) + " " +
			styles.DimStyle.Render(fmt.Sprintf("Loading page %d...", m.Catalog.LoadingPage))
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	// Center: how much of the list is loaded
	center := styles.DimStyle.Render(fmt.Sprintf("%d movies", len(m.Catalog.Items)))
	if m.Catalog.Page > 0 {
		more := ""
		if m.Catalog.HasMorePages {
			more = "+"
		}
		center += styles.DimStyle.Render(fmt.Sprintf(" · %d pages%s", m.Catalog.Page, more))
	}

	// Right side: user and "? help" hint
	right := styles.SubtitleStyle.Render(m.SessionSvc.Current().DisplayName()) + "  " +
		styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
MOVIES                          FILTERS
  j/k        Up/down              tab        Open / next field
  g/Home     First movie          S-tab      Previous field
  G/End      Last movie           space      Toggle genre
  PgUp/PgDn  Scroll page          enter      Add keyword / apply
  Ctrl+u/d   Scroll half page     backspace  Remove last keyword
  /          Filter titles        Ctrl+s     Apply
                                  esc        Back to movies
OTHER
  f          Favorite             r          Refresh
  i          Toggle details       L          Log in / out
  q          Quit                 ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := fmt.Sprintf(`
          Log out %s?

        [Y] Yes      [N] No
`, m.SessionSvc.Current().Name)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
