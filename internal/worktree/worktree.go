// Package worktree reads and writes tracked files in the working directory,
// the mutable surface the engine diffs against and checks out into. It
// never touches the repository directory itself.
package worktree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/minigit/internal/config"
	fsabs "github.com/keshon/minigit/internal/fs"
)

// Tree reads and writes working-tree files rooted at layout.Root, skipping
// the repository directory.
type Tree struct {
	fsys   fsabs.FS
	layout config.Layout
}

// New constructs a Tree over fsys rooted at layout.Root.
func New(fsys fsabs.FS, layout config.Layout) *Tree {
	return &Tree{fsys: fsys, layout: layout}
}

// ReadFile returns the bytes of path relative to the working-tree root. A
// path that does not exist on disk yields an empty slice rather than an
// error, matching the engine's treatment of "untracked" as "absent".
func (t *Tree) ReadFile(path string) ([]byte, error) {
	data, err := t.fsys.ReadFile(t.abs(path))
	if err != nil {
		if t.fsys.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("worktree: read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path is present in the working tree.
func (t *Tree) Exists(path string) bool {
	return t.fsys.Exists(t.abs(path))
}

// WriteFile creates or overwrites path, creating any parent directories it
// needs.
func (t *Tree) WriteFile(path string, data []byte) error {
	full := t.abs(path)
	if dir := filepath.Dir(full); dir != "." {
		if err := t.fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("worktree: write %s: %w", path, err)
		}
	}
	if err := t.fsys.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("worktree: write %s: %w", path, err)
	}
	return nil
}

// RemoveFile deletes path if present. Absence is not an error.
func (t *Tree) RemoveFile(path string) error {
	if err := t.fsys.Remove(t.abs(path)); err != nil && !t.fsys.IsNotExist(err) {
		return fmt.Errorf("worktree: remove %s: %w", path, err)
	}
	return nil
}

// ListFiles enumerates the regular files directly in the working-tree
// root (top-level only, per §4.4), excluding any entry whose name contains
// the repository directory name. Returned paths are relative to the root,
// slash-separated, and sorted.
func (t *Tree) ListFiles() ([]string, error) {
	entries, err := t.fsys.ReadDir(t.layout.Root)
	if err != nil {
		if t.fsys.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("worktree: list files: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), config.RepoDirName) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (t *Tree) abs(path string) string {
	return filepath.Join(t.layout.Root, filepath.FromSlash(path))
}

// IsWithinRepoDir reports whether path (relative to the root) is the
// repository directory or falls inside it.
func IsWithinRepoDir(path string) bool {
	return path == config.RepoDirName || strings.HasPrefix(path, config.RepoDirName+"/")
}
