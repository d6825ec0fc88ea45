package fileops

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadDir(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "a.txt"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "sub"), 0755))

	names, err := OS{}.ReadDir(tempDir)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "sub"}, names)

	_, err = OS{}.ReadDir(filepath.Join(tempDir, "missing"))
	assert.Equal(t, KindNotFound, Classify(err))
}

func TestCreateDir(t *testing.T) {
	tempDir := t.TempDir()

	path, err := OS{}.CreateDir(tempDir, "testdir")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "testdir"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = OS{}.CreateDir(tempDir, "testdir")
	assert.Error(t, err, "creating an existing directory should fail")

	_, err = OS{}.CreateDir(tempDir, "a/b")
	assert.Equal(t, KindInvalidInput, Classify(err))
}

func TestRename(t *testing.T) {
	tempDir := t.TempDir()
	oldPath := filepath.Join(tempDir, "oldname.txt")
	writeFile(t, oldPath, "test content")

	newPath, err := OS{}.Rename(oldPath, "newname.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "newname.txt"), newPath)
	assert.FileExists(t, newPath)
	assert.NoFileExists(t, oldPath)

	t.Run("existing destination fails by default", func(t *testing.T) {
		writeFile(t, filepath.Join(tempDir, "another.txt"), "another")
		_, err := OS{}.Rename(newPath, "another.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExists))

		data, _ := os.ReadFile(filepath.Join(tempDir, "another.txt"))
		assert.Equal(t, "another", string(data))
	})

	t.Run("overwrite policy replaces destination", func(t *testing.T) {
		_, err := OS{Overwrite: true}.Rename(newPath, "another.txt")
		require.NoError(t, err)

		data, _ := os.ReadFile(filepath.Join(tempDir, "another.txt"))
		assert.Equal(t, "test content", string(data))
	})

	t.Run("separator in name rejected", func(t *testing.T) {
		_, err := OS{}.Rename(filepath.Join(tempDir, "another.txt"), "../escape.txt")
		assert.Equal(t, KindInvalidInput, Classify(err))
	})
}

func TestDelete(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.txt")
	dir := filepath.Join(tempDir, "dir")
	writeFile(t, file, "x")
	writeFile(t, filepath.Join(dir, "nested", "deep.txt"), "y")

	require.NoError(t, OS{}.Delete(file, false))
	assert.NoFileExists(t, file)

	require.NoError(t, OS{}.Delete(dir, true))
	assert.NoDirExists(t, dir)

	err := OS{}.Delete(file, false)
	assert.Equal(t, KindNotFound, Classify(err))
}

func TestCopyFilePreservesMetadata(t *testing.T) {
	tempDir := t.TempDir()
	srcPath := filepath.Join(tempDir, "source.sh")
	writeFile(t, srcPath, "#!/bin/sh\necho hi\n")
	require.NoError(t, os.Chmod(srcPath, 0750))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(srcPath, mtime, mtime))

	dstPath := filepath.Join(tempDir, "dest.sh")
	require.NoError(t, OS{}.CopyFileOrDir(srcPath, dstPath))

	data, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(data))

	info, err := os.Stat(dstPath)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0750), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestCopyDir(t *testing.T) {
	tempDir := t.TempDir()
	srcDir := filepath.Join(tempDir, "srcdir")
	writeFile(t, filepath.Join(srcDir, "file1.txt"), "content1")
	writeFile(t, filepath.Join(srcDir, "subdir", "file2.txt"), "content2")

	dstDir := filepath.Join(tempDir, "dstdir")
	require.NoError(t, OS{}.CopyFileOrDir(srcDir, dstDir))

	assert.FileExists(t, filepath.Join(dstDir, "file1.txt"))
	data, err := os.ReadFile(filepath.Join(dstDir, "subdir", "file2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content2", string(data))

	err = OS{}.CopyFileOrDir(srcDir, filepath.Join(srcDir, "subdir", "copy"))
	assert.Error(t, err, "copying a directory into itself should fail")

	err = OS{}.CopyFileOrDir(srcDir, srcDir)
	assert.True(t, errors.Is(err, ErrExists))
}

func TestMove(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "file.txt")
	dest := filepath.Join(tempDir, "dest")
	writeFile(t, src, "payload")
	require.NoError(t, os.Mkdir(dest, 0755))

	moved, err := OS{}.Move(src, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "file.txt"), moved)
	assert.NoFileExists(t, src)
	assert.FileExists(t, moved)

	t.Run("destination must be a directory", func(t *testing.T) {
		other := filepath.Join(tempDir, "other.txt")
		writeFile(t, other, "o")
		_, err := OS{}.Move(moved, other)
		assert.Equal(t, KindInvalidInput, Classify(err))
	})

	t.Run("missing destination", func(t *testing.T) {
		_, err := OS{}.Move(moved, filepath.Join(tempDir, "nope"))
		assert.Equal(t, KindNotFound, Classify(err))
	})

	t.Run("collision", func(t *testing.T) {
		again := filepath.Join(tempDir, "file.txt")
		writeFile(t, again, "second")
		_, err := OS{}.Move(again, dest)
		assert.True(t, errors.Is(err, ErrExists))
		assert.FileExists(t, again)
	})

	t.Run("directory into itself", func(t *testing.T) {
		_, err := OS{}.Move(dest, dest)
		assert.Error(t, err)

		inner := filepath.Join(tempDir, "tree", "inner")
		require.NoError(t, os.MkdirAll(inner, 0755))
		_, err = OS{}.Move(filepath.Join(tempDir, "tree"), inner)
		assert.Error(t, err)
	})
}

func TestClassifyAndFormat(t *testing.T) {
	assert.Equal(t, KindPermissionDenied, Classify(fs.ErrPermission))
	assert.Equal(t, KindNotFound, Classify(fs.ErrNotExist))
	assert.Equal(t, KindUnsupportedFormat, Classify(ErrUnsupportedFormat))
	assert.Equal(t, KindFilesystem, Classify(errors.New("disk on fire")))
	assert.Equal(t, KindUnknown, Classify(nil))

	assert.NoError(t, Wrap("read", "/x", nil))

	err := Wrap("delete", "/test/file.txt", fs.ErrPermission)
	assert.True(t, errors.Is(err, &OpError{Kind: KindPermissionDenied}))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, "delete /test/file.txt: permission denied", err.Error())

	msg := FormatError("deleting file.txt", err)
	assert.Equal(t, "Error deleting file.txt: permission denied", msg)
	assert.Equal(t, "Error reading: boom", FormatError("reading", errors.New("boom")))
}
