package preview

import (
	"iter"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"

	"github.com/rtmali/rangefe/internal/logger"
)

const (
	// Below this width markdown is shown as plain text.
	minMarkdownWidth = 30
	maxMarkdownSize  = 512 * 1024
	maxCacheEntries  = 32
)

// Markdown renders .md files with Glamour and caches the result per
// content and width.
type Markdown struct {
	style string

	mu    sync.Mutex
	cache map[uint64][]string
}

// NewMarkdown creates a markdown previewer using a Glamour standard style.
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "dark"
	}
	return &Markdown{style: style, cache: make(map[uint64][]string)}
}

func (m *Markdown) Lines(path string, width int) (iter.Seq[string], error) {
	if err := sniffText(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) > maxMarkdownSize {
		data = data[:maxMarkdownSize]
	}
	return fromSlice(m.render(string(data), width)), nil
}

func (m *Markdown) render(content string, width int) []string {
	if width < minMarkdownWidth {
		return strings.Split(content, "\n")
	}

	key := cacheKey(content, width)

	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("glamour renderer error: %v", err)
		return strings.Split(content, "\n")
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Warn("glamour render error: %v", err)
		return strings.Split(content, "\n")
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n "), "\n")

	if len(m.cache) >= maxCacheEntries {
		m.cache = make(map[uint64][]string)
	}
	m.cache[key] = lines
	return lines
}

func cacheKey(content string, width int) uint64 {
	d := xxhash.New()
	d.WriteString(content)
	d.WriteString("\x00")
	d.WriteString(strconv.Itoa(width))
	return d.Sum64()
}
