package preview

import (
	"bufio"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/rtmali/rangefe/internal/utils"
)

const (
	sniffSize     = 512
	maxLineLength = 1024 * 1024
	tabWidth      = 4
)

// Highlighter colours source lines with Chroma, one line at a time.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a highlighter using the named Chroma style.
func NewHighlighter(theme string) *Highlighter {
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style}
}

// lexerFor picks a lexer by filename, falling back to the extension.
func lexerFor(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Get(strings.TrimPrefix(ext, "."))
		}
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// Line highlights a single line. Without a lexer the line is returned as is.
func (h *Highlighter) Line(lexer chroma.Lexer, line string) string {
	if h == nil || lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var b strings.Builder
	for _, token := range iterator.Tokens() {
		// Chroma appends newlines to some tokens.
		text := strings.TrimSuffix(token.Value, "\n")
		if text == "" {
			continue
		}
		b.WriteString(h.tokenStyle(token.Type).Render(text))
	}
	return b.String()
}

func (h *Highlighter) tokenStyle(tokenType chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(tokenType)
	style := lipgloss.NewStyle()

	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

// Text previews a text file line by line. A nil highlighter shows plain text.
func Text(h *Highlighter) Previewer {
	return Func(func(path string, _ int) (iter.Seq[string], error) {
		if err := sniffText(path); err != nil {
			return nil, err
		}

		var lexer chroma.Lexer
		if h != nil {
			lexer = lexerFor(filepath.Base(path))
		}

		return func(yield func(string) bool) {
			f, err := os.Open(path)
			if err != nil {
				yield(errorLine(err))
				return
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
			for scanner.Scan() {
				line := strings.ReplaceAll(scanner.Text(), "\t", strings.Repeat(" ", tabWidth))
				if !yield(h.Line(lexer, line)) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				yield(errorLine(err))
			}
		}, nil
	})
}

// sniffText rejects files whose first bytes contain a NUL.
func sniffText(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	if utils.IsBinary(buf[:n]) {
		return ErrBinary
	}
	return nil
}
