package main

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/rtmali/rangefe/internal/logger"
)

var errNoClipboard = errors.New("no system clipboard available")

type fileOpenResultMsg struct {
	path string
	err  error
}

// openWithDefault hands path to the desktop's default application
// without waiting for it.
func openWithDefault(path string) error {
	return open.Start(path)
}

func mirrorClipboard(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}

func (m *model) openFile(path string) tea.Cmd {
	opener := m.openPath
	return func() tea.Msg {
		return fileOpenResultMsg{path: path, err: opener(path)}
	}
}

// copyToClipboard mirrors the clipboard slot to the system clipboard.
// Failure only gets logged; the slot itself is already set.
func (m *model) copyToClipboard(text string) {
	if err := m.copyToSystem(text); err != nil {
		logger.Debug("System clipboard not updated: %v", err)
	}
}
