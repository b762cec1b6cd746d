package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flick/internal/tui/styles"
)

// InputModal asks for a single line of text, such as a user name
type InputModal struct {
	visible bool
	title   string
	hint    string
	input   textinput.Model
}

func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 30
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti}
}

// Show opens the modal with an empty input
func (m *InputModal) Show(title, placeholder string) {
	m.visible = true
	m.title = title
	m.hint = "enter confirm · esc cancel"
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
}

func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

func (m InputModal) IsVisible() bool {
	return m.visible
}

func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 36

	line := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.NavyDark)

	content := lipgloss.JoinVertical(lipgloss.Left,
		line.Foreground(styles.White).Bold(true).Render(m.title),
		line.Render(""),
		line.Render(m.input.View()),
		line.Render(""),
		line.Foreground(styles.DimGray).Render(m.hint),
	)

	return styles.ModalStyle.Render(content)
}
