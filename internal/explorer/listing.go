package explorer

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rtmali/rangefe/internal/fileops"
	"github.com/rtmali/rangefe/internal/logger"
	"github.com/rtmali/rangefe/internal/utils"
)

// Filesystem is everything the explorer asks of the operating system.
type Filesystem interface {
	ReadDir(dir string) ([]string, error)
	Stat(path string) (fs.FileInfo, error)
	Delete(path string, isDir bool) error
	Rename(oldPath, newName string) (string, error)
	CreateDir(dir, name string) (string, error)
	CopyFileOrDir(src, dst string) error
	Move(src, destDir string) (string, error)
}

// NoSelection marks the selection of an empty listing.
const NoSelection = -1

// Entry is one name in a directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Listing is a directory's entries sorted case-insensitively by name.
type Listing []Entry

// Names returns the entry names in listing order.
func (l Listing) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}

// Dirs returns only the directory entries.
func (l Listing) Dirs() Listing {
	var out Listing
	for _, e := range l {
		if e.IsDir {
			out = append(out, e)
		}
	}
	return out
}

// Index returns the position of name, or -1.
func (l Listing) Index(name string) int {
	for i, e := range l {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// List reads dir through fsys. Unreadable directories list as empty.
func List(fsys Filesystem, dir string, showHidden bool) Listing {
	names, err := fsys.ReadDir(dir)
	if err != nil {
		if fileops.Classify(err) != fileops.KindPermissionDenied {
			logger.Debug("Cannot list %s: %v", dir, err)
		}
		return Listing{}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	listing := make(Listing, 0, len(names))
	for _, name := range names {
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := fsys.Stat(path)
		listing = append(listing, Entry{
			Name:  name,
			Path:  path,
			IsDir: err == nil && info.IsDir(),
		})
	}
	return listing
}

// FileInfo is the four-field summary shown in the footer and info dialog.
type FileInfo struct {
	Permissions string
	Type        string
	Size        string
	Modified    string
}

// UnknownInfo is reported when an entry cannot be stat'ed.
var UnknownInfo = FileInfo{
	Permissions: "Unknown",
	Type:        "Unknown",
	Size:        "N/A",
	Modified:    "N/A",
}

func (i FileInfo) String() string {
	return fmt.Sprintf("Permissions: %s | Type: %s | Size: %s | Modified: %s",
		i.Permissions, i.Type, i.Size, i.Modified)
}

// Stat summarises path. timeFormat is a Go time layout.
func Stat(fsys Filesystem, path, timeFormat string) FileInfo {
	info, err := fsys.Stat(path)
	if err != nil {
		return UnknownInfo
	}
	return FileInfo{
		Permissions: utils.Permissions(info.Mode()),
		Type:        utils.EntryType(filepath.Base(path), info.IsDir()),
		Size:        utils.FormatFileSize(info.Size()),
		Modified:    info.ModTime().Format(timeFormat),
	}
}
