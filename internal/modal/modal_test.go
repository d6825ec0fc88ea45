package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *Modal, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func TestConfirmResolution(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		outcome Outcome
	}{
		{"y confirms", runes("y"), Yes},
		{"n declines", runes("n"), No},
		{"esc cancels", key(tea.KeyEsc), Cancelled},
		{"uppercase ignored", runes("Y"), Pending},
		{"other letter ignored", runes("q"), Pending},
		{"enter ignored", key(tea.KeyEnter), Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirm("Delete", "Delete file a.txt? (y/n)")
			res, _ := m.Update(tt.msg)
			assert.Equal(t, tt.outcome, res.Outcome)
		})
	}
}

func TestTextInputSubmitTrimmed(t *testing.T) {
	m := NewTextInput("Rename", "Rename 'a' to: ", "", nil)
	typeText(m, "  new name  ")

	res, _ := m.Update(key(tea.KeyEnter))
	assert.Equal(t, Submitted, res.Outcome)
	assert.Equal(t, "new name", res.Value)
}

func TestTextInputBackspace(t *testing.T) {
	m := NewTextInput("Find", "Enter filename to search: ", "", nil)
	typeText(m, "abcd")
	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyBackspace))

	assert.Equal(t, "ab", m.Value())
}

func TestTextInputEmptyIsNotCancel(t *testing.T) {
	m := NewTextInput("Mkdir", "New directory name: ", "", nil)
	res, _ := m.Update(key(tea.KeyEnter))
	assert.Equal(t, Submitted, res.Outcome)
	assert.Equal(t, "", res.Value)

	m = NewTextInput("Mkdir", "New directory name: ", "", nil)
	typeText(m, "draft")
	res, _ = m.Update(key(tea.KeyEsc))
	assert.Equal(t, Cancelled, res.Outcome)
	assert.Equal(t, "", res.Value)
}

func TestTextInputNoLengthLimit(t *testing.T) {
	m := NewTextInput("Go", "Enter directory path: ", "", nil)
	long := strings.Repeat("x", 500)
	typeText(m, long)

	res, _ := m.Update(key(tea.KeyEnter))
	assert.Equal(t, long, res.Value)
}

func TestTextInputTabCompletion(t *testing.T) {
	m := NewTextInput("Go", "Enter directory path: ", "", func(s string) string {
		return s + "uments/"
	})
	typeText(m, "~/Doc")
	res, _ := m.Update(key(tea.KeyTab))
	assert.False(t, res.Resolved())
	assert.Equal(t, "~/Documents/", m.Value())

	// Without a completer Tab does nothing.
	plain := NewTextInput("Find", "Enter filename to search: ", "abc", nil)
	plain.Update(key(tea.KeyTab))
	assert.Equal(t, "abc", plain.Value())
}

func TestDisplayModalsCloseOnlyOnEsc(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}

	for _, m := range []*Modal{
		NewPreview("Preview", lines),
		NewInfo("Info", []string{"Permissions: -rw-r--r--"}),
		NewHelp("Help", []string{"q quit"}),
	} {
		t.Run(m.Kind().String(), func(t *testing.T) {
			m.SetSize(80, 24)
			for _, msg := range []tea.KeyMsg{runes("q"), runes("y"), key(tea.KeyEnter), key(tea.KeyDown), runes("j")} {
				res, _ := m.Update(msg)
				assert.False(t, res.Resolved(), msg.String())
			}
			res, _ := m.Update(key(tea.KeyEsc))
			assert.Equal(t, Closed, res.Outcome)
		})
	}
}

func TestPreviewScrolls(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "row"
	}
	m := NewPreview("Preview", lines)
	m.SetSize(80, 24)

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 1, m.viewport.YOffset)
}

func TestControllerSingleSlot(t *testing.T) {
	var c Controller
	c.Resize(80, 24)

	assert.False(t, c.Active())
	assert.Equal(t, None, c.Kind())

	require.True(t, c.Open(NewConfirm("Delete", "Delete file a? (y/n)")))
	assert.False(t, c.Open(NewInfo("Info", nil)), "second modal must be refused")
	assert.Equal(t, Confirm, c.Kind())

	res, _ := c.HandleKey(runes("x"))
	assert.False(t, res.Resolved())
	assert.True(t, c.Active())

	res, _ = c.HandleKey(runes("n"))
	assert.Equal(t, No, res.Outcome)
	assert.False(t, c.Active())

	res, _ = c.HandleKey(runes("y"))
	assert.False(t, res.Resolved(), "keys without a modal resolve nothing")

	require.True(t, c.Open(NewInfo("Info", nil)))
	c.Close()
	assert.False(t, c.Active())
}

func TestControllerViewCentersBox(t *testing.T) {
	var c Controller
	c.Resize(100, 30)
	require.True(t, c.Open(NewConfirm("Delete file?", "Delete file notes.txt? (y/n)")))

	out := ansi.Strip(c.View())
	assert.Contains(t, out, "Delete file notes.txt? (y/n)")
	assert.Contains(t, out, "Press 'y' to confirm")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestInfoSizedToContent(t *testing.T) {
	m := NewInfo("Info", []string{"short"})
	m.SetSize(200, 50)
	assert.Equal(t, minBoxWidth, m.boxWidth())
	assert.Equal(t, 1, m.viewport.Height)
}
