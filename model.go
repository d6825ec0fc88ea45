package main

import (
	"os"
	"os/user"

	"github.com/charmbracelet/bubbles/help"

	"github.com/rtmali/rangefe/internal/archive"
	"github.com/rtmali/rangefe/internal/config"
	"github.com/rtmali/rangefe/internal/explorer"
	"github.com/rtmali/rangefe/internal/fileops"
	"github.com/rtmali/rangefe/internal/git"
	"github.com/rtmali/rangefe/internal/modal"
	"github.com/rtmali/rangefe/internal/preview"
)

// Terminal dimension constants
const (
	minTerminalWidth  = 60
	minTerminalHeight = 12
	uiOverhead        = 3 // header, info line, status line
)

type model struct {
	cfg      *config.Config
	ex       *explorer.Explorer
	previews *preview.Registry

	modals  modal.Controller
	pending *explorer.Request

	keys keyMap
	help help.Model

	width  int
	height int

	statusMsg   string
	statusIsErr bool

	home     string
	userHost string

	git    git.Status
	gitDir string

	// inspectGit is swapped out in tests.
	inspectGit func(dir string) git.Status

	// openPath and copyToSystem reach outside the process.
	openPath     func(path string) error
	copyToSystem func(text string) error
}

func initialModel(cfg *config.Config, start string) *model {
	home, _ := os.UserHomeDir()

	fsys := fileops.OS{Overwrite: cfg.CollisionPolicy == config.CollisionOverwrite}
	ex := explorer.New(fsys, archive.NewRegistry(), start, explorer.Options{
		ShowHidden: cfg.ShowHidden,
		TimeFormat: cfg.TimeFormat,
		Home:       home,
		Overwrite:  fsys.Overwrite,
	})

	previews := preview.NewRegistry(preview.Options{
		SyntaxTheme:   cfg.SyntaxTheme,
		MarkdownStyle: cfg.MarkdownStyle,
	})

	m := &model{
		cfg:          cfg,
		ex:           ex,
		previews:     previews,
		keys:         newKeyMap(),
		help:         help.New(),
		home:         home,
		userHost:     userAtHost(),
		inspectGit:   git.Inspect,
		openPath:     openWithDefault,
		copyToSystem: mirrorClipboard,
	}
	m.refreshGit()
	return m
}

// refreshGit re-inspects the repository when the current directory changed.
func (m *model) refreshGit() {
	dir := m.ex.CurrentPath()
	if dir == m.gitDir {
		return
	}
	m.gitDir = dir
	m.git = m.inspectGit(dir)
}

func (m *model) bodyHeight() int {
	return max(m.height-uiOverhead, 3)
}

func (m *model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

func userAtHost() string {
	name := "user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return name + "@" + host
}
