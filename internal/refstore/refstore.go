// Package refstore reads and writes the reference files described in §4.3:
// HEAD, refs/branches, index and MERGE_HEAD. Each loader is self-contained
// (no shared in-memory state across calls) per §5's "filesystem is the
// source of truth" policy.
package refstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/minigit/internal/config"
	"github.com/keshon/minigit/internal/fingerprint"
	fsabs "github.com/keshon/minigit/internal/fs"
)

// Head is the (currentBranchName, tipFingerprint) pair anchoring the next
// commit.
type Head struct {
	Branch string
	Tip    fingerprint.Fingerprint
}

// LoadHead reads HEAD. Trailing whitespace is trimmed per §4.3.
func LoadHead(fsys fsabs.FS, layout config.Layout) (Head, error) {
	data, err := fsys.ReadFile(layout.HeadFile())
	if err != nil {
		return Head{}, fmt.Errorf("refstore: load HEAD: %w", err)
	}
	line := strings.TrimRight(string(data), " \t\r\n")
	branch, tip, _ := strings.Cut(line, ":")
	return Head{Branch: branch, Tip: fingerprint.Fingerprint(tip)}, nil
}

// SaveHead writes HEAD as "branch:tip".
func SaveHead(fsys fsabs.FS, layout config.Layout, h Head) error {
	content := fmt.Sprintf("%s:%s", h.Branch, h.Tip.String())
	return fsys.WriteFile(layout.HeadFile(), []byte(content), 0o644)
}

// LoadBranches reads refs/branches into a name -> tip map. Per §4.3, if the
// file is missing or empty the map is seeded with an empty-tip entry for
// the default branch.
func LoadBranches(fsys fsabs.FS, layout config.Layout) (map[string]fingerprint.Fingerprint, error) {
	branches := map[string]fingerprint.Fingerprint{}
	data, err := fsys.ReadFile(layout.BranchesFile())
	if err != nil {
		if fsys.IsNotExist(err) {
			branches[config.DefaultBranch] = ""
			return branches, nil
		}
		return nil, fmt.Errorf("refstore: load branches: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		name, tip, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		branches[name] = fingerprint.Fingerprint(tip)
	}
	if len(branches) == 0 {
		branches[config.DefaultBranch] = ""
	}
	return branches, nil
}

// SaveBranches writes the branch table, one "name:tip" line per branch,
// sorted by name for deterministic output.
func SaveBranches(fsys fsabs.FS, layout config.Layout, branches map[string]fingerprint.Fingerprint) error {
	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s:%s\n", name, branches[name].String())
	}
	if err := fsys.MkdirAll(layout.RefsDir(), 0o755); err != nil {
		return fmt.Errorf("refstore: save branches: %w", err)
	}
	if err := fsys.WriteFile(layout.BranchesFile(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("refstore: save branches: %w", err)
	}
	return nil
}

// LoadIndex reads the staged-paths set. Empty lines are ignored and
// trailing whitespace is trimmed on read, per §4.3. Each line is still one
// path; a path is followed by an optional ":<blobFingerprint>" recording
// the blob snapshot taken at add time, so status can tell "staged" from
// "staged then changed again" (see §9 Open Question 5) without re-deriving
// a fingerprint that would just compare the working file to itself. A line
// with no colon is a path staged under the plain one-per-line form with no
// recorded snapshot.
func LoadIndex(fsys fsabs.FS, layout config.Layout) (map[string]fingerprint.Fingerprint, error) {
	index := map[string]fingerprint.Fingerprint{}
	data, err := fsys.ReadFile(layout.IndexFile())
	if err != nil {
		if fsys.IsNotExist(err) {
			return index, nil
		}
		return nil, fmt.Errorf("refstore: load index: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		path, fp, ok := strings.Cut(line, ":")
		if !ok {
			index[line] = ""
			continue
		}
		index[path] = fingerprint.Fingerprint(fp)
	}
	return index, nil
}

// SaveIndex writes the staged-paths set, one "path:blobFingerprint" line
// per entry, sorted by path.
func SaveIndex(fsys fsabs.FS, layout config.Layout, index map[string]fingerprint.Fingerprint) error {
	paths := make([]string, 0, len(index))
	for p := range index {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&b, "%s:%s\n", p, index[p].String())
	}
	return fsys.WriteFile(layout.IndexFile(), []byte(b.String()), 0o644)
}

// MergeState records an in-progress, conflicted merge, per §3/§4.3: the
// name of the branch being merged in, and the two tip fingerprints the
// merge was started from (the current branch's tip and the target
// branch's tip). Status reports it as a merge in progress, and the next
// successful commit clears it.
type MergeState struct {
	Merging bool
	Branch  string                  // branch being merged in ("merging:" line)
	Head    fingerprint.Fingerprint // current branch's tip when the merge started
	Target  fingerprint.Fingerprint // target branch's tip when the merge started
}

// LoadMergeState reads MERGE_HEAD. A missing file is not an error: it means
// no merge is in progress.
func LoadMergeState(fsys fsabs.FS, layout config.Layout) (MergeState, error) {
	data, err := fsys.ReadFile(layout.MergeHeadFile())
	if err != nil {
		if fsys.IsNotExist(err) {
			return MergeState{}, nil
		}
		return MergeState{}, fmt.Errorf("refstore: load merge state: %w", err)
	}
	state := MergeState{Merging: true}
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "merging:"):
			state.Branch = strings.TrimPrefix(line, "merging:")
		case strings.HasPrefix(line, "head:"):
			state.Head = fingerprint.Fingerprint(strings.TrimPrefix(line, "head:"))
		case strings.HasPrefix(line, "target:"):
			state.Target = fingerprint.Fingerprint(strings.TrimPrefix(line, "target:"))
		}
	}
	return state, nil
}

// SaveMergeState writes MERGE_HEAD, marking a merge as in progress.
func SaveMergeState(fsys fsabs.FS, layout config.Layout, state MergeState) error {
	content := fmt.Sprintf("merging:%s\nhead:%s\ntarget:%s\n", state.Branch, state.Head, state.Target)
	return fsys.WriteFile(layout.MergeHeadFile(), []byte(content), 0o644)
}

// ClearMergeState removes MERGE_HEAD once a merge completes or is aborted.
// Absence of the file is treated as already-cleared.
func ClearMergeState(fsys fsabs.FS, layout config.Layout) error {
	if err := fsys.Remove(layout.MergeHeadFile()); err != nil && !fsys.IsNotExist(err) {
		return fmt.Errorf("refstore: clear merge state: %w", err)
	}
	return nil
}
