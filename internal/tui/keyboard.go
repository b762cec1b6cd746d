package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, LogoutCmd(m.SessionSvc)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateLogin:
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			name := m.InputModal.Value()
			m.InputModal.Hide()
			m.State = StateBrowsing
			return m, LoginCmd(m.SessionSvc, name)
		}
		if !m.InputModal.IsVisible() {
			m.State = StateBrowsing
		}
		return m, cmd
	}

	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// Focused text inputs get every other key
	if m.FilterPanel.IsFocused() {
		if key.Matches(msg, Keys.Escape) {
			m.focusList()
			return m, nil
		}
		return m, m.FilterPanel.Update(msg)
	}
	if m.List.IsFilterTyping() {
		cmd := m.List.Update(msg)
		m.updateDetails()
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if m.List.IsFiltering() {
			// Refocus the existing filter input
			return m, m.List.Update(msg)
		}
		return m, m.List.ToggleFilter()

	case key.Matches(msg, Keys.FocusFilters):
		return m, m.focusFilters()

	case key.Matches(msg, Keys.ToggleDetails):
		m.ShowDetails = !m.ShowDetails
		return m, m.updateLayout()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, Keys.Favorite):
		movie, ok := m.List.SelectedMovie()
		if !ok {
			return m, nil
		}
		return m, AddFavoriteCmd(m.SessionSvc, movie)

	case key.Matches(msg, Keys.Session):
		if m.SessionSvc.Current().IsAnonymous() {
			m.InputModal.Show("Log in", "user name")
			m.State = StateLogin
			return m, nil
		}
		m.State = StateConfirmLogout
		return m, nil
	}

	// Everything else navigates the list
	cmd := m.List.Update(msg)
	m.updateDetails()
	return m, cmd
}
