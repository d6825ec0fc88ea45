package explorer

import (
	"path/filepath"

	"github.com/rtmali/rangefe/internal/archive"
	"github.com/rtmali/rangefe/internal/utils"
)

// Options configures an Explorer.
type Options struct {
	ShowHidden bool
	TimeFormat string
	// Home expands "~" in typed paths.
	Home string
	// Overwrite lets Compress replace an existing archive.
	Overwrite bool
}

// ViewState is what the three columns show.
type ViewState struct {
	CurrentPath string
	// Selection indexes Listing, or is NoSelection when Listing is empty.
	Selection int
	Listing   Listing
	// Expanded lists the selected entry when it is a directory.
	Expanded Listing
	// Parents holds the directories of CurrentPath's parent.
	Parents Listing
}

// Explorer owns the view state and clipboard slot and runs file operations
// against them.
type Explorer struct {
	fs       Filesystem
	archives *archive.Registry
	opts     Options

	view      ViewState
	clipboard string
}

// New creates an explorer rooted at start and loads its listings.
func New(fsys Filesystem, archives *archive.Registry, start string, opts Options) *Explorer {
	if opts.TimeFormat == "" {
		opts.TimeFormat = "2006-01-02 15:04:05"
	}
	if archives == nil {
		archives = archive.NewRegistry()
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		abs = filepath.Clean(start)
	}

	e := &Explorer{
		fs:       fsys,
		archives: archives,
		opts:     opts,
		view:     ViewState{CurrentPath: abs},
	}
	e.Reload()
	return e
}

// View returns a snapshot of the view state.
func (e *Explorer) View() ViewState { return e.view }

func (e *Explorer) CurrentPath() string { return e.view.CurrentPath }

// Clipboard returns the copied path, or "" when the slot is empty.
func (e *Explorer) Clipboard() string { return e.clipboard }

// Selected returns the highlighted entry.
func (e *Explorer) Selected() (Entry, bool) {
	s := e.view.Selection
	if s < 0 || s >= len(e.view.Listing) {
		return Entry{}, false
	}
	return e.view.Listing[s], true
}

// SelectedInfo summarises the highlighted entry.
func (e *Explorer) SelectedInfo() (FileInfo, bool) {
	sel, ok := e.Selected()
	if !ok {
		return FileInfo{}, false
	}
	return Stat(e.fs, sel.Path, e.opts.TimeFormat), true
}

// Reload re-reads every listing and clamps the selection.
func (e *Explorer) Reload() {
	v := &e.view
	v.Listing = List(e.fs, v.CurrentPath, e.opts.ShowHidden)

	switch {
	case len(v.Listing) == 0:
		v.Selection = NoSelection
	case v.Selection < 0:
		v.Selection = 0
	case v.Selection >= len(v.Listing):
		v.Selection = len(v.Listing) - 1
	}

	v.Expanded = nil
	if sel, ok := e.Selected(); ok && sel.IsDir {
		v.Expanded = List(e.fs, sel.Path, e.opts.ShowHidden)
	}

	v.Parents = List(e.fs, utils.ParentPath(v.CurrentPath), e.opts.ShowHidden).Dirs()
}

// MoveUp moves the selection up one entry, stopping at the top.
func (e *Explorer) MoveUp() {
	if e.view.Selection > 0 {
		e.view.Selection--
	}
}

// MoveDown moves the selection down one entry, stopping at the bottom.
func (e *Explorer) MoveDown() {
	if e.view.Selection < len(e.view.Listing)-1 {
		e.view.Selection++
	}
}

// Back goes to the parent directory with the selection reset.
func (e *Explorer) Back() {
	e.chdir(utils.ParentPath(e.view.CurrentPath))
}

// Enter descends into the selected directory. Files are ignored.
func (e *Explorer) Enter() bool {
	sel, ok := e.Selected()
	if !ok || !sel.IsDir {
		return false
	}
	e.chdir(sel.Path)
	return true
}

// Select highlights name in the current listing.
func (e *Explorer) Select(name string) bool {
	i := e.view.Listing.Index(name)
	if i < 0 {
		return false
	}
	e.view.Selection = i
	e.Reload()
	return true
}

func (e *Explorer) chdir(path string) {
	e.view.CurrentPath = path
	e.view.Selection = 0
	e.Reload()
}
