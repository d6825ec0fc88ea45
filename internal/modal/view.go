package modal

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	frameWidth  = 6 // rounded border + horizontal padding of 2
	frameHeight = 4 // rounded border + vertical padding of 1
)

var (
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func (m *Modal) accent() lipgloss.Color {
	switch m.kind {
	case Confirm:
		return lipgloss.Color("196")
	case TextInput:
		return lipgloss.Color("105")
	case Help:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("99")
	}
}

func (m *Modal) boxWidth() int {
	screen := m.width
	if screen <= 0 {
		screen = dialogWidth + 2
	}
	limit := max(minBoxWidth, screen-2)

	switch m.kind {
	case Confirm, TextInput:
		return min(dialogWidth, limit)
	case Info:
		content := lipgloss.Width(m.title)
		for _, l := range m.lines {
			content = max(content, lipgloss.Width(l))
		}
		return min(max(content+frameWidth+1, minBoxWidth), limit)
	default:
		return limit
	}
}

// View renders the modal box (not yet centered).
func (m *Modal) View() string {
	accent := m.accent()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(m.boxWidth() - 2)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Render(m.title)

	var body, hint string
	switch m.kind {
	case Confirm:
		body = promptStyle.Render(m.prompt)
		hint = "Press 'y' to confirm, 'n' to decline, ESC to cancel"
	case TextInput:
		body = promptStyle.Render(m.prompt) + "\n" + m.input.View()
		hint = "Enter to submit, ESC to cancel"
		if m.complete != nil {
			hint += ", Tab to complete"
		}
	default:
		body = m.viewport.View()
		hint = "ESC to close"
		if m.viewport.TotalLineCount() > m.viewport.Height {
			hint += ", ↑/↓ PgUp/PgDn to scroll"
		}
	}

	return box.Render(title + "\n\n" + body + "\n\n" + hintStyle.Render(hint))
}
