package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatFileSize formats a byte count with two decimals, walking the
// units B through PB in steps of 1024.
func FormatFileSize(size int64) string {
	value := float64(size)
	for i, unit := range sizeUnits {
		if value < 1024 || i == len(sizeUnits)-1 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return ""
}

// Permissions renders mode the way `ls -l` does, e.g. "-rw-r--r--".
func Permissions(mode fs.FileMode) string {
	var b [10]byte

	switch {
	case mode&fs.ModeDir != 0:
		b[0] = 'd'
	case mode&fs.ModeSymlink != 0:
		b[0] = 'l'
	case mode&fs.ModeNamedPipe != 0:
		b[0] = 'p'
	case mode&fs.ModeSocket != 0:
		b[0] = 's'
	case mode&fs.ModeCharDevice != 0:
		b[0] = 'c'
	case mode&fs.ModeDevice != 0:
		b[0] = 'b'
	default:
		b[0] = '-'
	}

	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}

	setSpecial(&b[3], mode&fs.ModeSetuid != 0, 's')
	setSpecial(&b[6], mode&fs.ModeSetgid != 0, 's')
	setSpecial(&b[9], mode&fs.ModeSticky != 0, 't')

	return string(b[:])
}

// setSpecial overlays a setuid/setgid/sticky bit on an execute slot:
// lowercase when the execute bit is also set, uppercase otherwise.
func setSpecial(slot *byte, set bool, c byte) {
	if !set {
		return
	}
	if *slot == '-' {
		*slot = c - ('a' - 'A')
		return
	}
	*slot = c
}

// ParentPath returns the parent of an absolute path. The root is its own parent.
func ParentPath(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// EntryType returns "Directory" for directories, the lowercase extension
// for files that have one, and "N/A" otherwise.
func EntryType(name string, isDir bool) string {
	if isDir {
		return "Directory"
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return "N/A"
	}
	return strings.ToLower(ext)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolvePath makes a user-typed path absolute relative to base.
func ResolvePath(input, base, home string) string {
	p := ExpandHome(input, home)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// IsBinary reports whether data looks binary (contains a NUL byte).
func IsBinary(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}
