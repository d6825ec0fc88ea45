package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/rtmali/rangefe/internal/logger"
	"github.com/rtmali/rangefe/internal/utils"
)

// SubstringMatchNames returns the positions in names that contain query,
// case-insensitively, in the order of names.
func SubstringMatchNames(query string, names []string) []int {
	if query == "" {
		return nil
	}

	lowerQuery := strings.ToLower(query)
	var results []int
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lowerQuery) {
			results = append(results, i)
		}
	}
	return results
}

// FilterNames returns the names containing query, case-insensitively.
func FilterNames(query string, names []string) []string {
	matches := SubstringMatchNames(query, names)
	out := make([]string, 0, len(matches))
	for _, i := range matches {
		out = append(out, names[i])
	}
	return out
}

// CompletePath completes the last element of a typed directory path.
// Relative input is resolved against base and "~" against home. The best
// fuzzy match among subdirectories wins; input is returned unchanged when
// nothing matches.
func CompletePath(input, base, home string) string {
	dirPart, partial := "", input
	if i := strings.LastIndex(input, string(filepath.Separator)); i >= 0 {
		dirPart, partial = input[:i+1], input[i+1:]
	} else if input == "~" {
		return input + string(filepath.Separator)
	}

	dir := utils.ResolvePath(dirPart, base, home)
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("Path completion cannot read %s: %v", dir, err)
		return input
	}

	showHidden := strings.HasPrefix(partial, ".")
	var names []string
	for _, e := range entries {
		if !showHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && info.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return input
	}
	sort.Strings(names)

	if partial == "" {
		if len(names) == 1 {
			return dirPart + names[0] + string(filepath.Separator)
		}
		return input
	}

	matches := fuzzy.Find(partial, names)
	if len(matches) == 0 {
		return input
	}
	return dirPart + matches[0].Str + string(filepath.Separator)
}
