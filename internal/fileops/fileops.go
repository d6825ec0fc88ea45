package fileops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// OS is the os-backed filesystem used by the explorer. With Overwrite
// unset, rename/copy/move refuse to replace an existing destination.
type OS struct {
	Overwrite bool
}

// ReadDir returns the entry names of dir in filesystem order.
func (OS) ReadDir(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, Wrap("read", dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, Wrap("read", dir, err)
	}
	return names, nil
}

// Stat follows symlinks, so a link to a directory reports IsDir.
func (OS) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	return info, Wrap("stat", path, err)
}

// Delete removes a file, or a directory and everything below it.
func (OS) Delete(path string, isDir bool) error {
	if isDir {
		return Wrap("delete", path, os.RemoveAll(path))
	}
	return Wrap("delete", path, os.Remove(path))
}

// Rename renames a file or directory within its parent directory.
func (o OS) Rename(oldPath, newName string) (string, error) {
	if err := ValidateName(newName); err != nil {
		return "", Wrap("rename", oldPath, err)
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if newPath == oldPath {
		return newPath, nil
	}
	if err := o.clear(newPath); err != nil {
		return "", Wrap("rename", oldPath, err)
	}
	return newPath, Wrap("rename", oldPath, os.Rename(oldPath, newPath))
}

// CreateDir creates exactly one directory level below dir.
func (OS) CreateDir(dir, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", Wrap("mkdir", name, err)
	}
	path := filepath.Join(dir, name)
	return path, Wrap("mkdir", path, os.Mkdir(path, 0755))
}

// CopyFileOrDir copies src to dst, keeping file modes and modification times.
func (o OS) CopyFileOrDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return Wrap("copy", src, err)
	}

	if filepath.Clean(src) == filepath.Clean(dst) {
		return Wrap("copy", dst, ErrExists)
	}
	if srcInfo.IsDir() && isWithin(dst, src) {
		return Wrap("copy", src, fmt.Errorf("cannot copy a directory into itself"))
	}
	if err := o.clear(dst); err != nil {
		return Wrap("copy", dst, err)
	}

	if srcInfo.IsDir() {
		return Wrap("copy", src, copyDir(src, dst))
	}
	return Wrap("copy", src, copyFile(src, dst, srcInfo))
}

// Move moves src into destDir, keeping its base name, and returns the new path.
func (o OS) Move(src, destDir string) (string, error) {
	info, err := os.Stat(destDir)
	if err != nil {
		return "", Wrap("move", destDir, err)
	}
	if !info.IsDir() {
		return "", Wrap("move", destDir, ErrNotDirectory)
	}

	destPath := filepath.Join(destDir, filepath.Base(src))
	if destPath == filepath.Clean(src) {
		return destPath, nil
	}
	if isWithin(destPath, src) {
		return "", Wrap("move", src, fmt.Errorf("cannot move a directory into itself"))
	}
	if err := o.clear(destPath); err != nil {
		return "", Wrap("move", destPath, err)
	}

	if err := os.Rename(src, destPath); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return "", Wrap("move", src, err)
		}
		// Cross-device: copy then delete.
		if err := o.CopyFileOrDir(src, destPath); err != nil {
			return "", err
		}
		if err := os.RemoveAll(src); err != nil {
			return "", Wrap("move", src, err)
		}
	}
	return destPath, nil
}

// clear enforces the collision policy for dst.
func (o OS) clear(dst string) error {
	if _, err := os.Lstat(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !o.Overwrite {
		return ErrExists
	}
	return os.RemoveAll(dst)
}

// ValidateName rejects names that would escape the target directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if err := copyFile(srcPath, dstPath, info); err != nil {
			return err
		}
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
}

// isWithin reports whether path is dir itself or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
