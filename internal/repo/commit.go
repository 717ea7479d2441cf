package repo

import (
	"fmt"
	"sort"
	"time"

	"github.com/keshon/minigit/internal/commitcodec"
	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/refstore"
)

// timestampLayout is the wall-clock column format the commit codec's
// "timestamp:" line uses. It carries a numeric zone offset (contrast
// the reference implementation's bare local time) so two commits made
// on different machines in different zones remain comparable.
const timestampLayout = "2006-01-02 15:04:05 -0700"

// CommitResult reports the commit produced (or, when nothing was staged,
// that no commit was made).
type CommitResult struct {
	Empty bool
	ID    string
}

// Commit builds a new commit from the current index: for every staged
// path it re-reads the working-tree bytes (the manifest reflects content
// at commit time, not at add time — see the data model's invariants),
// writes a blob, and records (path, blob). The index is cleared on
// success; a conflicted merge in progress is also cleared, since a
// successful commit is how a merge conflict is resolved.
func (r *Repository) Commit(message string) (CommitResult, error) {
	st, err := r.loadState()
	if err != nil {
		return CommitResult{}, err
	}
	if len(st.index) == 0 {
		return CommitResult{Empty: true}, nil
	}

	paths := make([]string, 0, len(st.index))
	for p := range st.index {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	manifest := make([]commitcodec.ManifestEntry, 0, len(paths))
	for _, path := range paths {
		if !r.tree.Exists(path) {
			return CommitResult{}, newError(PathNotFound, fmt.Sprintf("staged path missing at commit time: %s", path), nil)
		}
		data, err := r.tree.ReadFile(path)
		if err != nil {
			return CommitResult{}, newError(IoFailure, fmt.Sprintf("read %s", path), err)
		}
		blob, err := r.objects.Put(data)
		if err != nil {
			return CommitResult{}, newError(IoFailure, fmt.Sprintf("write blob for %s", path), err)
		}
		manifest = append(manifest, commitcodec.ManifestEntry{Path: path, Blob: blob})
	}

	timestamp := time.Now().Format(timestampLayout)
	id := commitcodec.ComputeID(message, timestamp, st.head.Tip, manifest)
	commit := commitcodec.Commit{
		ID:        id,
		Message:   message,
		Timestamp: timestamp,
		Parent:    st.head.Tip,
		Manifest:  manifest,
	}
	if err := r.objects.PutAt(id, commitcodec.Encode(commit)); err != nil {
		return CommitResult{}, newError(IoFailure, "write commit object", err)
	}

	st.head.Tip = id
	st.branches[st.head.Branch] = id
	if err := refstore.SaveBranches(r.fsys, r.layout, st.branches); err != nil {
		return CommitResult{}, newError(IoFailure, "update branch table", err)
	}
	if err := refstore.SaveHead(r.fsys, r.layout, st.head); err != nil {
		return CommitResult{}, newError(IoFailure, "update HEAD", err)
	}
	if err := refstore.SaveIndex(r.fsys, r.layout, map[string]fingerprint.Fingerprint{}); err != nil {
		return CommitResult{}, newError(IoFailure, "clear index", err)
	}
	if st.merge.Merging {
		if err := refstore.ClearMergeState(r.fsys, r.layout); err != nil {
			return CommitResult{}, newError(IoFailure, "clear merge state", err)
		}
	}

	r.log.Info("committed", "id", id.String(), "branch", st.head.Branch, "files", len(manifest))
	return CommitResult{ID: id.String()}, nil
}
