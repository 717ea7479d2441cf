package repo

import (
	"sort"

	"github.com/keshon/minigit/internal/fingerprint"
)

// StatusReport summarizes the repository's working state: which branch
// HEAD is on, whether a conflicted merge is in progress, and the
// staged/modified/untracked path sets.
type StatusReport struct {
	Branch    string
	Merging   bool
	Staged    []string
	Modified  []string
	Untracked []string
}

// Status reports the current branch, merge-in-progress flag, and the
// staged/modified/untracked sets.
//
// "Modified" covers two cases: a staged path whose working-tree bytes no
// longer match the blob snapshot taken when it was added (§9 Open Question
// 5 — the source re-hashed a file and compared it to itself; the staged
// snapshot is what it should have compared against), and a path tracked by
// HEAD's commit, not currently staged, whose working-tree bytes differ
// from the committed blob.
func (r *Repository) Status() (StatusReport, error) {
	st, err := r.loadState()
	if err != nil {
		return StatusReport{}, err
	}
	headManifest, err := r.manifestMap(st.head.Tip)
	if err != nil {
		return StatusReport{}, err
	}
	workFiles, err := r.tree.ListFiles()
	if err != nil {
		return StatusReport{}, newError(IoFailure, "scan working tree", err)
	}

	staged := make([]string, 0, len(st.index))
	for path := range st.index {
		staged = append(staged, path)
	}
	sort.Strings(staged)

	modifiedSet := map[string]struct{}{}
	for path, snapshot := range st.index {
		if !r.tree.Exists(path) {
			continue
		}
		data, err := r.tree.ReadFile(path)
		if err != nil {
			return StatusReport{}, newError(IoFailure, "read "+path, err)
		}
		if fingerprint.Of(data) != snapshot {
			modifiedSet[path] = struct{}{}
		}
	}
	for path, committed := range headManifest {
		if _, staged := st.index[path]; staged {
			continue
		}
		if !r.tree.Exists(path) {
			continue
		}
		data, err := r.tree.ReadFile(path)
		if err != nil {
			return StatusReport{}, newError(IoFailure, "read "+path, err)
		}
		if fingerprint.Of(data) != committed {
			modifiedSet[path] = struct{}{}
		}
	}
	modified := make([]string, 0, len(modifiedSet))
	for path := range modifiedSet {
		modified = append(modified, path)
	}
	sort.Strings(modified)

	var untracked []string
	for _, path := range workFiles {
		_, inHead := headManifest[path]
		_, inIndex := st.index[path]
		if !inHead && !inIndex {
			untracked = append(untracked, path)
		}
	}
	sort.Strings(untracked)

	return StatusReport{
		Branch:    st.head.Branch,
		Merging:   st.merge.Merging,
		Staged:    staged,
		Modified:  modified,
		Untracked: untracked,
	}, nil
}
