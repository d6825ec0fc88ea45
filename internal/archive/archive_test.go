package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtmali/rangefe/internal/fileops"
)

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "backup.zip", ArchiveName("backup"))
	assert.Equal(t, "backup.zip", ArchiveName("backup.zip"))
	assert.Equal(t, "backup.tar.zip", ArchiveName("backup.tar"))
	assert.Equal(t, "shout.zip", ArchiveName("shout.ZIP"))
}

func TestCompressFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file_to_compress.txt")
	content := []byte("Hello, compression!\nsecond line\n")
	require.NoError(t, os.WriteFile(src, content, 0640))

	dst := filepath.Join(dir, "compressed.zip")
	require.NoError(t, Compress(src, dst))

	// Extract somewhere else so the original is untouched.
	out := t.TempDir()
	require.NoError(t, NewRegistry().Decompress(dst, out))

	got, err := os.ReadFile(filepath.Join(out, "file_to_compress.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestCompressDirectoryKeepsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "src", "pkg"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "README.md"), []byte("# hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "src", "pkg", "a.go"), []byte("package pkg"), 0644))

	dst := filepath.Join(dir, "project.zip")
	require.NoError(t, Compress(tree, dst))

	zr, err := zip.OpenReader(dst)
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	zr.Close()

	assert.ElementsMatch(t, []string{"README.md", "src/", "src/pkg/", "src/pkg/a.go", "empty/"}, names)

	out := t.TempDir()
	require.NoError(t, ExtractZip(dst, out))
	got, err := os.ReadFile(filepath.Join(out, "src", "pkg", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg", string(got))
	assert.FileExists(t, filepath.Join(out, "README.md"))
	assert.DirExists(t, filepath.Join(out, "empty"))
	assert.NoDirExists(t, filepath.Join(out, "project"))
}

func TestCompressMissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.zip")

	err := Compress(filepath.Join(dir, "nope"), dst)
	assert.Equal(t, fileops.KindNotFound, fileops.Classify(err))
	assert.NoFileExists(t, dst)
}

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"bundle/one.txt":        "one",
		"bundle/nested/two.txt": "two",
	})

	out := t.TempDir()
	require.NoError(t, NewRegistry().Decompress(archivePath, out))

	got, err := os.ReadFile(filepath.Join(out, "bundle", "nested", "two.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestExtractTarGzZeroModeIsReadable(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bare.tgz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "plain.txt", Size: 2, Typeflag: tar.TypeReg}))
	_, err := tw.Write([]byte("ok"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0644))

	out := t.TempDir()
	require.NoError(t, NewRegistry().Decompress(archivePath, out))

	info, err := os.Stat(filepath.Join(out, "plain.txt"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0400, "owner can read")
	got, err := os.ReadFile(filepath.Join(out, "plain.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.tgz")
	writeTarGz(t, archivePath, map[string]string{"../../escape.txt": "gotcha"})

	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0755))

	err := NewRegistry().Decompress(archivePath, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal path")
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}

func TestExtractOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(src, []byte("original"), 0644))
	dst := filepath.Join(dir, "note.zip")
	require.NoError(t, Compress(src, dst))

	require.NoError(t, os.WriteFile(src, []byte("changed"), 0644))
	require.NoError(t, ExtractZip(dst, dir))

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"a.zip", "A.ZIP", "b.tar.gz", "c.tgz"} {
		_, err := r.Lookup(name)
		assert.NoError(t, err, name)
	}

	for _, name := range []string{"plain.txt", "d.tar", "e.gz", "zip"} {
		_, err := r.Lookup(name)
		assert.ErrorIs(t, err, fileops.ErrUnsupportedFormat, name)
	}

	err := r.Decompress("/tmp/whatever.rar", t.TempDir())
	assert.Equal(t, fileops.KindUnsupportedFormat, fileops.Classify(err))
	assert.Contains(t, err.Error(), "unsupported archive format")
}
