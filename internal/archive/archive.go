package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rtmali/rangefe/internal/fileops"
)

// Extension is appended to every archive Compress writes.
const Extension = ".zip"

// Decompressor extracts an archive into a destination directory.
type Decompressor interface {
	Extract(archivePath, dest string) error
}

// DecompressorFunc adapts a function to Decompressor.
type DecompressorFunc func(archivePath, dest string) error

func (f DecompressorFunc) Extract(archivePath, dest string) error { return f(archivePath, dest) }

// Registry maps filename suffixes to decompressors.
type Registry struct {
	bySuffix map[string]Decompressor
}

// NewRegistry returns a registry with zip and gzipped tar support.
func NewRegistry() *Registry {
	r := &Registry{bySuffix: make(map[string]Decompressor)}
	r.Register(".zip", DecompressorFunc(ExtractZip))
	r.Register(".tar.gz", DecompressorFunc(ExtractTarGz))
	r.Register(".tgz", DecompressorFunc(ExtractTarGz))
	return r
}

// Register adds or replaces the decompressor for suffix.
func (r *Registry) Register(suffix string, d Decompressor) {
	r.bySuffix[strings.ToLower(suffix)] = d
}

// Lookup finds the decompressor for name, preferring the longest matching suffix.
func (r *Registry) Lookup(name string) (Decompressor, error) {
	lower := strings.ToLower(name)

	suffixes := make([]string, 0, len(r.bySuffix))
	for s := range r.bySuffix {
		suffixes = append(suffixes, s)
	}
	sort.Slice(suffixes, func(i, j int) bool { return len(suffixes[i]) > len(suffixes[j]) })

	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return r.bySuffix[s], nil
		}
	}
	return nil, fileops.ErrUnsupportedFormat
}

// Decompress extracts archivePath into dest using the matching decompressor.
func (r *Registry) Decompress(archivePath, dest string) error {
	d, err := r.Lookup(filepath.Base(archivePath))
	if err != nil {
		return fileops.Wrap("decompress", archivePath, err)
	}
	return fileops.Wrap("decompress", archivePath, d.Extract(archivePath, dest))
}

// ArchiveName builds the output file name for Compress, so "backup" and
// "backup.zip" both become "backup.zip". A typed ".zip" is not doubled.
func ArchiveName(name string) string {
	if strings.EqualFold(filepath.Ext(name), Extension) {
		name = name[:len(name)-len(Extension)]
	}
	return name + Extension
}

// Compress writes src (a file or directory tree) into a zip at dst.
// A file is stored under its base name; a directory's entries are stored
// relative to the directory itself.
func Compress(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fileops.Wrap("compress", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fileops.Wrap("compress", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fileops.Wrap("compress", dst, cerr)
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	zw := zip.NewWriter(out)

	if !info.IsDir() {
		if err := addFile(zw, src, filepath.Base(src), info); err != nil {
			zw.Close()
			return fileops.Wrap("compress", src, err)
		}
		return fileops.Wrap("compress", dst, zw.Close())
	}

	absDst, _ := filepath.Abs(dst)
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if abs, _ := filepath.Abs(path); abs == absDst {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			header, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			header.Name = filepath.ToSlash(rel) + "/"
			_, err = zw.CreateHeader(header)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return addFile(zw, path, rel, info)
	})
	if walkErr != nil {
		zw.Close()
		return fileops.Wrap("compress", src, walkErr)
	}
	return fileops.Wrap("compress", dst, zw.Close())
}

func addFile(zw *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(name)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// ExtractZip extracts a zip archive into dest, overwriting existing files.
func ExtractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractZipFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	if err := writeFile(target, rc, mode); err != nil {
		return err
	}
	return os.Chtimes(target, f.Modified, f.Modified)
}

// ExtractTarGz extracts a gzip-compressed tar archive into dest.
func ExtractTarGz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			mode := fs.FileMode(header.Mode).Perm()
			if mode == 0 {
				mode = 0644
			}
			if err := writeFile(target, tr, mode); err != nil {
				return err
			}
			if err := os.Chtimes(target, header.ModTime, header.ModTime); err != nil {
				return err
			}
		}
		// Links and device entries are skipped.
	}
}

func writeFile(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin joins name onto dest and rejects entries that would land outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}
