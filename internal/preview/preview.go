package preview

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// UnsupportedMessage is the single line shown for files without a previewer.
const UnsupportedMessage = "Unsupported file type for preview."

// ErrBinary is returned by text previewers for content containing NUL bytes.
var ErrBinary = errors.New("binary file")

// Previewer renders a file as display lines. The sequence is lazy: lines
// are produced only as the caller pulls them.
type Previewer interface {
	Lines(path string, width int) (iter.Seq[string], error)
}

// Func adapts a function to Previewer.
type Func func(path string, width int) (iter.Seq[string], error)

func (f Func) Lines(path string, width int) (iter.Seq[string], error) { return f(path, width) }

type unsupported struct{}

func (unsupported) Lines(string, int) (iter.Seq[string], error) {
	return single(UnsupportedMessage), nil
}

// Unsupported yields UnsupportedMessage for any path.
var Unsupported Previewer = unsupported{}

// Options configures the built-in previewers.
type Options struct {
	SyntaxTheme   string
	MarkdownStyle string
}

// Registry picks a Previewer by lowercase file extension.
type Registry struct {
	byExt    map[string]Previewer
	fallback Previewer
}

var (
	plainExts  = []string{".txt", ".tex", ".csv", ".log", ".ini", ".cfg", ".conf"}
	sourceExts = []string{
		".py", ".java", ".c", ".cpp", ".h", ".js", ".ts", ".html", ".css", ".rb",
		".go", ".php", ".swift", ".json", ".yaml", ".yml", ".toml", ".sh", ".rs", ".xml", ".sql",
	}
)

// NewRegistry returns a registry with every built-in previewer registered.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		byExt:    make(map[string]Previewer),
		fallback: Unsupported,
	}

	for _, ext := range plainExts {
		r.Register(ext, Text(nil))
	}
	for _, ext := range sourceExts {
		r.Register(ext, Text(NewHighlighter(opts.SyntaxTheme)))
	}
	r.Register(".md", NewMarkdown(opts.MarkdownStyle))
	r.Register(".markdown", NewMarkdown(opts.MarkdownStyle))
	r.Register(".docx", Docx)
	r.Register(".odt", Odt)
	r.Register(".pptx", Pptx)
	r.Register(".pdf", PDF)
	r.Register(".xlsx", Spreadsheet)

	return r
}

// Register adds or replaces the previewer for ext (".txt" style).
func (r *Registry) Register(ext string, p Previewer) {
	r.byExt[strings.ToLower(ext)] = p
}

// Lookup returns the previewer for path, or Unsupported.
func (r *Registry) Lookup(path string) Previewer {
	if p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return p
	}
	return r.fallback
}

// Render collects at most max lines of preview for path. Failures become
// a single descriptive line.
func (r *Registry) Render(path string, width, max int) []string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return []string{UnsupportedMessage}
	}

	seq, err := r.Lookup(path).Lines(path, width)
	if err != nil {
		return []string{errorLine(err)}
	}

	lines := make([]string, 0, min(max, 64))
	if max > 0 {
		for line := range seq {
			lines = append(lines, line)
			if len(lines) == max {
				break
			}
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(empty file)")
	}
	return lines
}

func errorLine(err error) string {
	if errors.Is(err, ErrBinary) {
		return "Binary file, no preview available."
	}
	return "Error reading file: " + err.Error()
}

func single(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		yield(line)
	}
}

func fromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}
