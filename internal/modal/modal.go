package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind tags the variant held by the modal slot.
type Kind int

const (
	None Kind = iota
	Confirm
	TextInput
	Preview
	Info
	Help
)

func (k Kind) String() string {
	switch k {
	case Confirm:
		return "confirm"
	case TextInput:
		return "input"
	case Preview:
		return "preview"
	case Info:
		return "info"
	case Help:
		return "help"
	default:
		return "none"
	}
}

// Outcome is how a modal was resolved. Pending means it is still open.
type Outcome int

const (
	Pending Outcome = iota
	Yes
	No
	Cancelled
	Submitted
	Closed
)

// Result is returned by every key the modal handles.
type Result struct {
	Outcome Outcome
	Value   string
}

// Resolved reports whether the modal is finished.
func (r Result) Resolved() bool { return r.Outcome != Pending }

// Completer rewrites a partially typed value when Tab is pressed.
type Completer func(string) string

const (
	dialogWidth = 60
	minBoxWidth = 30
)

// Modal is one dialog: a confirmation, a text prompt, or a scrollable
// display (preview, info, help).
type Modal struct {
	kind     Kind
	title    string
	prompt   string
	input    textinput.Model
	complete Completer
	viewport viewport.Model
	lines    []string
	width    int
	height   int
}

// NewConfirm creates a yes/no/cancel dialog.
func NewConfirm(title, prompt string) *Modal {
	return &Modal{kind: Confirm, title: title, prompt: prompt}
}

// NewTextInput creates a single-line prompt. complete may be nil.
func NewTextInput(title, prompt, initial string, complete Completer) *Modal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = dialogWidth - 10
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return &Modal{kind: TextInput, title: title, prompt: prompt, input: ti, complete: complete}
}

// NewPreview creates a scrollable file preview.
func NewPreview(title string, lines []string) *Modal {
	return newDisplay(Preview, title, lines)
}

// NewInfo creates a scrollable information dialog sized to its content.
func NewInfo(title string, lines []string) *Modal {
	return newDisplay(Info, title, lines)
}

// NewHelp creates the key binding reference.
func NewHelp(title string, lines []string) *Modal {
	return newDisplay(Help, title, lines)
}

func newDisplay(kind Kind, title string, lines []string) *Modal {
	m := &Modal{kind: kind, title: title, lines: lines, viewport: viewport.New(0, 0)}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	return m
}

func (m *Modal) Kind() Kind { return m.kind }

func (m *Modal) Title() string { return m.title }

// Value is the current text buffer of a TextInput modal.
func (m *Modal) Value() string { return m.input.Value() }

// Lines returns the content of a display modal.
func (m *Modal) Lines() []string { return m.lines }

// SetSize fits the modal to a screen area of width x height.
func (m *Modal) SetSize(width, height int) {
	m.width, m.height = width, height

	switch m.kind {
	case Confirm, TextInput:
		m.input.Width = max(10, m.boxWidth()-frameWidth-len(m.input.Prompt)-1)
	default:
		innerW := m.boxWidth() - frameWidth
		// title, blank line, blank line, hint
		innerH := max(1, height-frameHeight-4)
		if m.kind == Info {
			innerH = min(innerH, max(1, len(m.lines)))
		}
		m.viewport.Width = max(1, innerW)
		m.viewport.Height = innerH
	}
}

// Update routes a key to the modal. Keys that do not resolve the modal
// return a Pending result.
func (m *Modal) Update(msg tea.KeyMsg) (Result, tea.Cmd) {
	switch m.kind {
	case Confirm:
		switch msg.String() {
		case "y":
			return Result{Outcome: Yes}, nil
		case "n":
			return Result{Outcome: No}, nil
		case "esc":
			return Result{Outcome: Cancelled}, nil
		}
		return Result{}, nil

	case TextInput:
		switch msg.Type {
		case tea.KeyEnter:
			return Result{Outcome: Submitted, Value: strings.TrimSpace(m.input.Value())}, nil
		case tea.KeyEsc:
			return Result{Outcome: Cancelled}, nil
		case tea.KeyTab:
			if m.complete != nil {
				m.input.SetValue(m.complete(m.input.Value()))
				m.input.CursorEnd()
			}
			return Result{}, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return Result{}, cmd

	case Preview, Info, Help:
		if msg.Type == tea.KeyEsc {
			return Result{Outcome: Closed}, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return Result{}, cmd
	}

	return Result{}, nil
}
