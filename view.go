package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rtmali/rangefe/internal/explorer"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("105"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	fileStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Padding(0, 1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	if m.modals.Active() {
		body = m.modals.View()
	} else {
		body = m.renderColumns()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderInfoLine(),
		m.renderStatusLine(),
	)
}

func (m *model) renderHeader() string {
	title := m.userHost + ": " + m.ex.CurrentPath()
	return headerStyle.Width(m.width).Render(ansi.Truncate(title, m.width-2, "…"))
}

// renderColumns draws parent directories, the current listing and the
// expanded contents of the selection side by side.
func (m *model) renderColumns() string {
	view := m.ex.View()
	colWidth := m.width / 3
	listHeight := m.bodyHeight() - 1

	parentSel := -1
	for i, e := range view.Parents {
		if e.Path == view.CurrentPath {
			parentSel = i
		}
	}

	columns := []string{
		m.renderColumn("Parent Directories", view.Parents, parentSel, colWidth, listHeight),
		m.renderColumn("Current Directory Files", view.Listing, view.Selection, colWidth, listHeight),
		m.renderColumn("Expanded Directory Contents", view.Expanded, -1, colWidth, listHeight),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *model) renderColumn(title string, entries explorer.Listing, selected, width, height int) string {
	inner := max(width-1, 1)
	lines := make([]string, 0, height+1)
	lines = append(lines, columnTitleStyle.Render(ansi.Truncate(title, inner, "…")))

	if len(entries) == 0 {
		lines = append(lines, emptyStyle.Render("(empty)"))
	}

	// Keep the selection on screen.
	offset := 0
	if selected >= height {
		offset = selected - height + 1
	}
	end := min(offset+height, len(entries))

	for i := offset; i < end; i++ {
		lines = append(lines, m.renderEntry(entries[i], i == selected, inner))
	}

	return lipgloss.NewStyle().Width(width).Height(height + 1).Render(strings.Join(lines, "\n"))
}

func (m *model) renderEntry(e explorer.Entry, selected bool, width int) string {
	name := e.Name
	if e.IsDir {
		name = "[+] " + name
	}

	marker := ""
	if m.git.IsModified(e.Path) {
		marker = " [M]"
	}
	name = ansi.Truncate(name, width-len(marker), "…")

	switch {
	case selected:
		return selectedStyle.Render(name+marker)
	case e.IsDir:
		name = dirStyle.Render(name)
	default:
		name = fileStyle.Render(name)
	}
	if marker != "" {
		name += modifiedStyle.Render(marker)
	}
	return name
}

func (m *model) renderInfoLine() string {
	text := "No file selected"
	if info, ok := m.ex.SelectedInfo(); ok {
		text = info.String()
	}
	return infoStyle.Width(m.width).Render(ansi.Truncate(text, m.width-2, "…"))
}

func (m *model) renderStatusLine() string {
	var right []string
	if clip := m.ex.Clipboard(); clip != "" {
		right = append(right, "Clipboard: "+clip)
	}
	if m.git.Branch != "" {
		right = append(right, "⎇ "+m.git.Branch)
	}
	right = append(right, "?: help")
	rightSide := hintStyle.Render(strings.Join(right, " | "))

	style := statusStyle
	if m.statusIsErr {
		style = errorStyle
	}
	leftWidth := max(m.width-lipgloss.Width(rightSide)-1, 10)
	left := style.Render(ansi.Truncate(m.statusMsg, leftWidth-2, "…"))

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(rightSide), 1)
	return left + strings.Repeat(" ", gap) + rightSide
}
