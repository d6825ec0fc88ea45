package explorer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rtmali/rangefe/internal/archive"
	"github.com/rtmali/rangefe/internal/fileops"
	"github.com/rtmali/rangefe/internal/logger"
	"github.com/rtmali/rangefe/internal/modal"
	"github.com/rtmali/rangefe/internal/search"
	"github.com/rtmali/rangefe/internal/utils"
)

// Op names an operation that needs a dialog answer before it runs.
type Op int

const (
	OpNone Op = iota
	OpDelete
	OpRename
	OpMkdir
	OpMove
	OpFind
	OpGoTo
	OpCompress
)

// Request describes the dialog an operation needs. The target is captured
// when the request is made, so the answer always applies to the entry that
// was highlighted at the time.
type Request struct {
	Op     Op
	Kind   modal.Kind
	Title  string
	Prompt string
	Target Entry
	// Source is the clipboard path for a move.
	Source string
	// CompletePaths enables Tab completion of directory paths.
	CompletePaths bool
}

// Report is the outcome of an operation: a status line, an error, and
// optionally lines to show in an info dialog.
type Report struct {
	Message string
	Err     error
	Title   string
	Lines   []string
}

func (r Report) Empty() bool { return r.Message == "" && r.Err == nil && len(r.Lines) == 0 }

func failure(op string, err error) Report {
	logger.Error("%s: %v", op, err)
	return Report{Message: fileops.FormatError(op, err), Err: err}
}

func invalidPath(msg, path string) Report {
	return Report{Message: msg, Err: fmt.Errorf("%w: %q", fileops.ErrNotDirectory, path)}
}

func success(format string, args ...any) Report {
	return Report{Message: fmt.Sprintf(format, args...)}
}

// Begin prepares op. A Request with Kind modal.None means there is nothing
// to ask; the Report then explains why, or is empty when the op is a no-op.
func (e *Explorer) Begin(op Op) (Request, Report) {
	sel, hasSel := e.Selected()

	switch op {
	case OpDelete:
		if !hasSel {
			return Request{}, Report{}
		}
		req := Request{Op: op, Kind: modal.Confirm, Target: sel, Title: "Delete file"}
		req.Prompt = fmt.Sprintf("Delete file %s? (y/n)", sel.Name)
		if sel.IsDir {
			req.Title = "Delete directory"
			req.Prompt = fmt.Sprintf("Delete directory %s and all its contents? (y/n)", sel.Name)
		}
		return req, Report{}

	case OpRename:
		if !hasSel {
			return Request{}, Report{}
		}
		return Request{Op: op, Kind: modal.TextInput, Target: sel, Title: "Rename",
			Prompt: fmt.Sprintf("Rename '%s' to: ", sel.Name)}, Report{}

	case OpMkdir:
		return Request{Op: op, Kind: modal.TextInput, Title: "New directory",
			Prompt: "New directory name: "}, Report{}

	case OpMove:
		if e.clipboard == "" {
			return Request{}, Report{Message: "Nothing to move. Copy an entry with 'c' first."}
		}
		return Request{Op: op, Kind: modal.TextInput, Source: e.clipboard, Title: "Move",
			Prompt: "Enter destination path: ", CompletePaths: true}, Report{}

	case OpFind:
		return Request{Op: op, Kind: modal.TextInput, Title: "Find",
			Prompt: "Enter filename to search: "}, Report{}

	case OpGoTo:
		return Request{Op: op, Kind: modal.TextInput, Title: "Go to",
			Prompt: "Enter directory path: ", CompletePaths: true}, Report{}

	case OpCompress:
		if !hasSel {
			return Request{}, Report{}
		}
		return Request{Op: op, Kind: modal.TextInput, Target: sel, Title: "Compress",
			Prompt: "Enter name for the compressed file (without extension): "}, Report{}
	}

	return Request{}, Report{}
}

// Resolve runs req with the dialog's answer. Cancelled and declined answers
// abort without a report, as do empty names. An empty path is an invalid path.
func (e *Explorer) Resolve(req Request, res modal.Result) Report {
	defer e.Reload()

	if req.Kind == modal.Confirm && res.Outcome != modal.Yes {
		return Report{}
	}
	if req.Kind == modal.TextInput && res.Outcome != modal.Submitted {
		return Report{}
	}
	if res.Value == "" {
		switch req.Op {
		case OpMove:
			return invalidPath("Invalid destination path.", res.Value)
		case OpGoTo:
			return invalidPath("Invalid directory path.", res.Value)
		case OpRename, OpMkdir, OpFind, OpCompress:
			return Report{}
		}
	}

	switch req.Op {
	case OpDelete:
		return e.delete(req.Target)
	case OpRename:
		return e.rename(req.Target, res.Value)
	case OpMkdir:
		return e.mkdir(res.Value)
	case OpMove:
		return e.move(req.Source, res.Value)
	case OpFind:
		return e.find(res.Value)
	case OpGoTo:
		return e.goTo(res.Value)
	case OpCompress:
		return e.compress(req.Target, res.Value)
	}
	return Report{}
}

func (e *Explorer) delete(target Entry) Report {
	if err := e.fs.Delete(target.Path, target.IsDir); err != nil {
		return failure("deleting "+target.Name, err)
	}
	logger.Info("Deleted %s", target.Path)
	return success("Deleted: %s", target.Path)
}

func (e *Explorer) rename(target Entry, newName string) Report {
	newPath, err := e.fs.Rename(target.Path, newName)
	if err != nil {
		return failure("renaming", err)
	}
	logger.Info("Renamed %s to %s", target.Path, newPath)
	e.Reload()
	e.Select(filepath.Base(newPath))
	return success("Renamed: %s -> %s", target.Name, filepath.Base(newPath))
}

func (e *Explorer) mkdir(name string) Report {
	path, err := e.fs.CreateDir(e.view.CurrentPath, name)
	if err != nil {
		return failure("creating directory", err)
	}
	e.Reload()
	e.Select(name)
	return success("Created directory: %s", path)
}

func (e *Explorer) move(source, destination string) Report {
	dest := utils.ResolvePath(destination, e.view.CurrentPath, e.opts.Home)
	info, err := e.fs.Stat(dest)
	if err != nil || !info.IsDir() {
		return invalidPath("Invalid destination path.", dest)
	}

	moved, err := e.fs.Move(source, dest)
	if err != nil {
		return failure("moving", err)
	}
	logger.Info("Moved %s to %s", source, moved)
	e.clipboard = ""
	return success("Moved: %s", moved)
}

func (e *Explorer) find(query string) Report {
	e.Reload()
	matches := search.FilterNames(query, e.view.Listing.Names())
	if len(matches) == 0 {
		return Report{Message: "No files found."}
	}
	return Report{
		Message: fmt.Sprintf("Found %d match(es) for '%s'", len(matches), query),
		Title:   "Search results",
		Lines:   matches,
	}
}

func (e *Explorer) goTo(input string) Report {
	dest := utils.ResolvePath(input, e.view.CurrentPath, e.opts.Home)
	info, err := e.fs.Stat(dest)
	if err != nil || !info.IsDir() {
		return invalidPath("Invalid directory path.", dest)
	}
	e.chdir(dest)
	return Report{}
}

func (e *Explorer) compress(target Entry, name string) Report {
	if err := fileops.ValidateName(name); err != nil {
		return failure("compressing", err)
	}
	out := filepath.Join(e.view.CurrentPath, archive.ArchiveName(name))
	if _, err := e.fs.Stat(out); err == nil && !e.opts.Overwrite {
		return failure("compressing", fileops.Wrap("compress", out, fileops.ErrExists))
	}
	if err := archive.Compress(target.Path, out); err != nil {
		return failure("compressing", err)
	}
	return success("Compressed to: %s", out)
}

// Copy puts the selection's path in the clipboard slot. It touches no files.
func (e *Explorer) Copy() Report {
	sel, ok := e.Selected()
	if !ok {
		return Report{}
	}
	e.clipboard = sel.Path
	return success("Copied: %s", sel.Path)
}

// Paste duplicates the clipboard entry into the current directory under
// the same name. The clipboard keeps its path.
func (e *Explorer) Paste() Report {
	defer e.Reload()

	if e.clipboard == "" {
		return Report{Message: "Clipboard is empty."}
	}
	dest := filepath.Join(e.view.CurrentPath, filepath.Base(e.clipboard))
	if err := e.fs.CopyFileOrDir(e.clipboard, dest); err != nil {
		return failure("pasting", err)
	}
	return success("Pasted: %s", dest)
}

// Decompress extracts the selected archive into the current directory.
func (e *Explorer) Decompress() Report {
	defer e.Reload()

	sel, ok := e.Selected()
	if !ok {
		return Report{}
	}
	if _, err := e.archives.Lookup(sel.Name); err != nil || sel.IsDir {
		return Report{Message: "Selected file is not a supported archive format.", Err: fileops.ErrUnsupportedFormat}
	}
	if err := e.archives.Decompress(sel.Path, e.view.CurrentPath); err != nil {
		return failure("decompressing", err)
	}
	logger.Info("Decompressed %s into %s", sel.Path, e.view.CurrentPath)
	return success("Decompressed: %s", sel.Path)
}

// Info describes the selection as a small table.
func (e *Explorer) Info() Report {
	sel, ok := e.Selected()
	if !ok {
		return Report{}
	}
	info := Stat(e.fs, sel.Path, e.opts.TimeFormat)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.AppendRows([]table.Row{
		{"Name", sel.Name},
		{"Path", sel.Path},
		{"Permissions", info.Permissions},
		{"Type", info.Type},
		{"Size", info.Size},
		{"Modified", info.Modified},
	})

	return Report{
		Title: "File Info: " + sel.Name,
		Lines: strings.Split(tw.Render(), "\n"),
	}
}
