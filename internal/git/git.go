package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Status is the working-tree state seen from one directory.
type Status struct {
	Branch string
	// Modified holds absolute paths of changed and untracked entries,
	// plus every directory above them up to the repository root.
	Modified map[string]bool
}

// IsModified reports whether path, or anything below it, has changes.
func (s Status) IsModified(path string) bool {
	return s.Modified[filepath.Clean(path)]
}

// Inspect returns the status of the repository containing dir. Outside a
// repository, or without git installed, it returns the zero Status.
func Inspect(dir string) Status {
	top, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil || top == "" {
		return Status{}
	}

	return Status{
		Branch:   GetBranch(dir),
		Modified: GetModifiedFiles(dir, top),
	}
}

// GetModifiedFiles parses `git status --porcelain` for the repository at top.
func GetModifiedFiles(dir, top string) map[string]bool {
	modified := make(map[string]bool)

	output, err := run(dir, "status", "--porcelain")
	if err != nil {
		return modified
	}

	for _, line := range strings.Split(output, "\n") {
		if len(line) <= 3 {
			continue
		}
		// XY status, a space, then the path. Renames read "old -> new".
		name := line[3:]
		if i := strings.Index(name, " -> "); i >= 0 {
			name = name[i+4:]
		}
		name = strings.Trim(strings.TrimSuffix(strings.TrimSpace(name), "/"), `"`)
		if name == "" {
			continue
		}

		path := filepath.Join(top, filepath.FromSlash(name))
		for path != top && !modified[path] {
			modified[path] = true
			parent := filepath.Dir(path)
			if parent == path {
				break
			}
			path = parent
		}
	}

	return modified
}

// GetBranch returns the current branch name, or "" when detached or
// outside a repository.
func GetBranch(dir string) string {
	branch, err := run(dir, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return branch
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
