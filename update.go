package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rtmali/rangefe/internal/explorer"
	"github.com/rtmali/rangefe/internal/fileops"
	"github.com/rtmali/rangefe/internal/logger"
	"github.com/rtmali/rangefe/internal/modal"
	"github.com/rtmali/rangefe/internal/search"
)

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle("rangefe")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minTerminalWidth)
		m.height = max(msg.Height, minTerminalHeight)
		m.modals.Resize(m.width, m.bodyHeight())
		m.help.Width = m.width
		return m, nil

	case fileOpenResultMsg:
		if msg.err != nil {
			logger.Error("Opening %s: %v", msg.path, msg.err)
			m.setStatus("Error opening "+filepath.Base(msg.path)+": "+msg.err.Error(), true)
		} else {
			m.setStatus("Opened: "+msg.path, false)
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.modals.Active() {
			cmd = m.handleModalKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
		// Listings are never cached between keystrokes.
		m.ex.Reload()
		m.refreshGit()
		return m, cmd
	}

	return m, nil
}

func (m *model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	res, cmd := m.modals.HandleKey(msg)
	if !res.Resolved() {
		return cmd
	}

	req := m.pending
	m.pending = nil
	if req != nil {
		m.applyReport(m.ex.Resolve(*req, res))
		m.gitDir = ""
	}
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.setStatus("", false)

	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Info("Quit")
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.ex.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.ex.MoveDown()
	case key.Matches(msg, m.keys.Back):
		m.ex.Back()
	case key.Matches(msg, m.keys.Enter):
		m.ex.Enter()

	case key.Matches(msg, m.keys.Delete):
		m.begin(explorer.OpDelete)
	case key.Matches(msg, m.keys.Rename):
		m.begin(explorer.OpRename)
	case key.Matches(msg, m.keys.Mkdir):
		m.begin(explorer.OpMkdir)
	case key.Matches(msg, m.keys.Move):
		m.begin(explorer.OpMove)
	case key.Matches(msg, m.keys.Find):
		m.begin(explorer.OpFind)
	case key.Matches(msg, m.keys.GoTo):
		m.begin(explorer.OpGoTo)
	case key.Matches(msg, m.keys.Compress):
		m.begin(explorer.OpCompress)

	case key.Matches(msg, m.keys.Copy):
		rep := m.ex.Copy()
		if clip := m.ex.Clipboard(); clip != "" && !rep.Empty() {
			m.copyToClipboard(clip)
		}
		m.applyReport(rep)
	case key.Matches(msg, m.keys.Paste):
		m.applyReport(m.ex.Paste())
		m.gitDir = ""
	case key.Matches(msg, m.keys.Decompress):
		m.applyReport(m.ex.Decompress())
		m.gitDir = ""
	case key.Matches(msg, m.keys.Info):
		m.applyReport(m.ex.Info())

	case key.Matches(msg, m.keys.Preview):
		m.openPreview()
	case key.Matches(msg, m.keys.Open):
		if sel, ok := m.ex.Selected(); ok {
			return m.openFile(sel.Path)
		}
	case key.Matches(msg, m.keys.Help):
		m.modals.Open(modal.NewHelp("Key bindings", strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n")))
	}
	return nil
}

// begin opens the dialog op asks for and parks the request until the
// dialog resolves.
func (m *model) begin(op explorer.Op) {
	req, rep := m.ex.Begin(op)
	switch req.Kind {
	case modal.Confirm:
		m.modals.Open(modal.NewConfirm(req.Title, req.Prompt))
	case modal.TextInput:
		var complete modal.Completer
		if req.CompletePaths {
			base, home := m.ex.CurrentPath(), m.home
			complete = func(s string) string { return search.CompletePath(s, base, home) }
		}
		m.modals.Open(modal.NewTextInput(req.Title, req.Prompt, "", complete))
	default:
		m.applyReport(rep)
		return
	}
	m.pending = &req
}

func (m *model) openPreview() {
	sel, ok := m.ex.Selected()
	if !ok {
		return
	}
	lines := m.previews.Render(sel.Path, m.previewWidth(), m.cfg.PreviewMaxLines)
	m.modals.Open(modal.NewPreview("Preview: "+sel.Name, lines))
}

func (m *model) previewWidth() int {
	// modal border and padding
	return max(m.width-8, 20)
}

// applyReport shows the outcome of an operation: lines open an info
// dialog, anything else lands in the status line.
func (m *model) applyReport(rep explorer.Report) {
	if rep.Empty() {
		return
	}
	if len(rep.Lines) > 0 {
		m.modals.Open(modal.NewInfo(rep.Title, rep.Lines))
	}
	if rep.Message != "" {
		// An unsupported format is informational.
		m.setStatus(rep.Message, rep.Err != nil && !errors.Is(rep.Err, fileops.ErrUnsupportedFormat))
	}
}
