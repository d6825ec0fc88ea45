package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller owns the single modal slot. While a modal is active it
// receives every key; resolving it empties the slot.
type Controller struct {
	active *Modal
	width  int
	height int
}

// Open places m in the slot. It refuses when another modal is active.
func (c *Controller) Open(m *Modal) bool {
	if c.active != nil || m == nil {
		return false
	}
	m.SetSize(c.width, c.height)
	c.active = m
	return true
}

func (c *Controller) Active() bool { return c.active != nil }

// Kind returns the tag of the active modal, or None.
func (c *Controller) Kind() Kind {
	if c.active == nil {
		return None
	}
	return c.active.kind
}

// Current returns the active modal or nil.
func (c *Controller) Current() *Modal { return c.active }

// Resize records the area modals are drawn in.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
	if c.active != nil {
		c.active.SetSize(width, height)
	}
}

// HandleKey forwards msg to the active modal and clears the slot once
// the modal resolves.
func (c *Controller) HandleKey(msg tea.KeyMsg) (Result, tea.Cmd) {
	if c.active == nil {
		return Result{}, nil
	}
	res, cmd := c.active.Update(msg)
	if res.Resolved() {
		c.active = nil
	}
	return res, cmd
}

// Close drops the active modal without resolving it.
func (c *Controller) Close() { c.active = nil }

// View renders the active modal centered in the controller's area.
func (c *Controller) View() string {
	if c.active == nil {
		return ""
	}
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, c.active.View())
}
