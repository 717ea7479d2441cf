package repo

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/keshon/minigit/internal/commitcodec"
	"github.com/keshon/minigit/internal/dag"
	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/refstore"
)

// MergeOutcome classifies the result of a Merge call, per the
// re-architecture guidance to separate control flow from human-readable
// phrasing: the façade returns a variant and a detail payload, and leaves
// rendering to the caller.
type MergeOutcome int

const (
	UpToDate MergeOutcome = iota
	FastForwarded
	Clean
	Conflicted
)

// MergeResult is the detail payload accompanying a MergeOutcome.
type MergeResult struct {
	Outcome       MergeOutcome
	Tip           string   // FastForwarded, Clean: the new current-branch tip
	NewCommit     string   // Clean: the merge commit's id
	ConflictPaths []string // Conflicted: paths left with conflict markers
}

// Merge merges branchName into the current branch, per §4.8: it detects
// already-merged and fast-forward cases first, and otherwise performs a
// file-level three-way merge against the nearest common ancestor,
// materializing conflicts with textual markers when the two sides touched
// the same path differently.
func (r *Repository) Merge(branchName string) (MergeResult, error) {
	st, err := r.loadState()
	if err != nil {
		return MergeResult{}, err
	}
	if branchName == st.head.Branch {
		return MergeResult{}, newError(SelfMerge, "cannot merge a branch into itself", nil)
	}
	targetTip, ok := resolveBranch(st.branches, branchName)
	if !ok {
		return MergeResult{}, newError(UnknownBranch, fmt.Sprintf("unknown branch: %s", branchName), nil)
	}
	if len(st.index) > 0 {
		return MergeResult{}, newError(DirtyIndex, "cannot merge with staged changes", nil)
	}

	currentTip := st.head.Tip
	src := r.dag()

	switch {
	case currentTip.Empty() && targetTip.Empty():
		return MergeResult{Outcome: UpToDate}, nil

	case currentTip.Empty():
		return r.fastForward(st, targetTip)

	case targetTip.Empty():
		return MergeResult{Outcome: UpToDate}, nil
	}

	// isAncestor(current, target): does target appear walking from current?
	// If so current already contains target's history.
	targetInCurrent, err := dag.IsAncestor(src, targetTip, currentTip)
	if err != nil {
		return MergeResult{}, newError(CorruptObject, "walk current branch history", err)
	}
	if targetInCurrent {
		return MergeResult{Outcome: UpToDate}, nil
	}

	// isAncestor(target, current): does current appear walking from target?
	// If so current can fast-forward to target.
	currentInTarget, err := dag.IsAncestor(src, currentTip, targetTip)
	if err != nil {
		return MergeResult{}, newError(CorruptObject, "walk target branch history", err)
	}
	if currentInTarget {
		return r.fastForward(st, targetTip)
	}

	ancestor, err := dag.FindCommonAncestor(src, currentTip, targetTip)
	if err != nil {
		return MergeResult{}, newError(CorruptObject, "find common ancestor", err)
	}
	if ancestor.Empty() {
		return MergeResult{}, newError(UnrelatedHistories, fmt.Sprintf("no common ancestor with %s", branchName), nil)
	}

	return r.threeWayMerge(st, branchName, ancestor, currentTip, targetTip)
}

// fastForward retargets the current branch to targetTip and materializes
// its manifest into the working tree. No new commit is created.
func (r *Repository) fastForward(st state, targetTip fingerprint.Fingerprint) (MergeResult, error) {
	currentManifest, err := r.manifestMap(st.head.Tip)
	if err != nil {
		return MergeResult{}, err
	}
	targetManifest, err := r.manifestMap(targetTip)
	if err != nil {
		return MergeResult{}, err
	}
	if err := r.materializeManifest(currentManifest, targetManifest); err != nil {
		return MergeResult{}, err
	}

	st.head = refstore.Head{Branch: st.head.Branch, Tip: targetTip}
	st.branches[st.head.Branch] = targetTip
	if err := refstore.SaveBranches(r.fsys, r.layout, st.branches); err != nil {
		return MergeResult{}, newError(IoFailure, "update branch table", err)
	}
	if err := refstore.SaveHead(r.fsys, r.layout, st.head); err != nil {
		return MergeResult{}, newError(IoFailure, "update HEAD", err)
	}
	r.log.Info("fast-forwarded", "branch", st.head.Branch, "tip", targetTip.String())
	return MergeResult{Outcome: FastForwarded, Tip: targetTip.String()}, nil
}

// threeWayMerge reconciles the current and target manifests against their
// common ancestor, per path, per the table in §4.8.
func (r *Repository) threeWayMerge(st state, targetBranch string, ancestor, currentTip, targetTip fingerprint.Fingerprint) (MergeResult, error) {
	baseManifest, err := r.manifestMap(ancestor)
	if err != nil {
		return MergeResult{}, err
	}
	currentManifest, err := r.manifestMap(currentTip)
	if err != nil {
		return MergeResult{}, err
	}
	targetManifest, err := r.manifestMap(targetTip)
	if err != nil {
		return MergeResult{}, err
	}

	paths := unionPaths(baseManifest, currentManifest, targetManifest)

	resolved := map[string]fingerprint.Fingerprint{}
	var conflicts []string
	for _, path := range paths {
		b := baseManifest[path]
		c := currentManifest[path]
		t := targetManifest[path]
		switch {
		case c == t:
			if !c.Empty() {
				resolved[path] = c
			}
		case b == t:
			if !c.Empty() {
				resolved[path] = c
			}
		case b == c:
			if !t.Empty() {
				resolved[path] = t
			}
		default:
			conflicts = append(conflicts, path)
		}
	}
	sort.Strings(conflicts)

	// Materialize every resolved path; leave conflicting paths for the
	// marker-writing pass below.
	for path, blob := range resolved {
		data, err := r.objects.Get(blob)
		if err != nil {
			return MergeResult{}, newError(CorruptObject, fmt.Sprintf("blob missing for %s", path), err)
		}
		if err := r.tree.WriteFile(path, data); err != nil {
			return MergeResult{}, newError(IoFailure, fmt.Sprintf("write %s", path), err)
		}
	}
	// A path present in the base or either tip but absent from resolved
	// and not conflicting was deleted by the merge; remove it if still on
	// disk from a prior checkout.
	for _, path := range paths {
		if _, ok := resolved[path]; ok {
			continue
		}
		if containsPath(conflicts, path) {
			continue
		}
		if err := r.tree.RemoveFile(path); err != nil {
			return MergeResult{}, newError(IoFailure, fmt.Sprintf("remove %s", path), err)
		}
	}

	if len(conflicts) == 0 {
		return r.commitCleanMerge(st, targetBranch, currentTip, targetTip, resolved)
	}

	for _, path := range conflicts {
		currentContent, err := blobContent(r, currentManifest[path])
		if err != nil {
			return MergeResult{}, err
		}
		targetContent, err := blobContent(r, targetManifest[path])
		if err != nil {
			return MergeResult{}, err
		}
		marker := conflictMarker(st.head.Branch, targetBranch, currentContent, targetContent)
		if err := r.tree.WriteFile(path, marker); err != nil {
			return MergeResult{}, newError(IoFailure, fmt.Sprintf("write conflict markers for %s", path), err)
		}
	}

	// Stage every path the merge touched that exists on disk, per §4.8.
	index := map[string]fingerprint.Fingerprint{}
	for _, path := range paths {
		if !r.tree.Exists(path) {
			continue
		}
		data, err := r.tree.ReadFile(path)
		if err != nil {
			return MergeResult{}, newError(IoFailure, fmt.Sprintf("read %s", path), err)
		}
		blob, err := r.objects.Put(data)
		if err != nil {
			return MergeResult{}, newError(IoFailure, fmt.Sprintf("stage %s", path), err)
		}
		index[path] = blob
	}
	if err := refstore.SaveIndex(r.fsys, r.layout, index); err != nil {
		return MergeResult{}, newError(IoFailure, "save index", err)
	}
	mergeState := refstore.MergeState{Merging: true, Branch: targetBranch, Head: currentTip, Target: targetTip}
	if err := refstore.SaveMergeState(r.fsys, r.layout, mergeState); err != nil {
		return MergeResult{}, newError(IoFailure, "write merge state", err)
	}

	r.log.Info("merge produced conflicts", "branch", targetBranch, "paths", conflicts)
	return MergeResult{Outcome: Conflicted, ConflictPaths: conflicts}, nil
}

func (r *Repository) commitCleanMerge(st state, targetBranch string, currentTip, targetTip fingerprint.Fingerprint, resolved map[string]fingerprint.Fingerprint) (MergeResult, error) {
	paths := make([]string, 0, len(resolved))
	for p := range resolved {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	manifest := make([]commitcodec.ManifestEntry, 0, len(paths))
	for _, p := range paths {
		manifest = append(manifest, commitcodec.ManifestEntry{Path: p, Blob: resolved[p]})
	}

	message := fmt.Sprintf("Merge branch '%s' into %s", targetBranch, st.head.Branch)
	timestamp := time.Now().Format(timestampLayout)
	id := commitcodec.ComputeMergeID(message, timestamp, currentTip, targetTip, manifest)
	commit := commitcodec.Commit{ID: id, Message: message, Timestamp: timestamp, Parent: currentTip, Manifest: manifest}
	if err := r.objects.PutAt(id, commitcodec.Encode(commit)); err != nil {
		return MergeResult{}, newError(IoFailure, "write merge commit", err)
	}

	st.head.Tip = id
	st.branches[st.head.Branch] = id
	if err := refstore.SaveBranches(r.fsys, r.layout, st.branches); err != nil {
		return MergeResult{}, newError(IoFailure, "update branch table", err)
	}
	if err := refstore.SaveHead(r.fsys, r.layout, st.head); err != nil {
		return MergeResult{}, newError(IoFailure, "update HEAD", err)
	}
	if err := refstore.ClearMergeState(r.fsys, r.layout); err != nil {
		return MergeResult{}, newError(IoFailure, "clear merge state", err)
	}

	r.log.Info("merged", "branch", targetBranch, "commit", id.String())
	return MergeResult{Outcome: Clean, Tip: id.String(), NewCommit: id.String()}, nil
}

func blobContent(r *Repository, blob fingerprint.Fingerprint) ([]byte, error) {
	if blob.Empty() {
		return nil, nil
	}
	data, err := r.objects.Get(blob)
	if err != nil {
		return nil, newError(CorruptObject, "read conflicting blob", err)
	}
	return data, nil
}

// conflictMarker renders the literal marker format from §4.8/§6.3.
func conflictMarker(currentBranch, sourceBranch string, currentContent, targetContent []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<<<<<<< HEAD (%s)\n", currentBranch)
	writeSide(&b, currentContent)
	b.WriteString("=======\n")
	writeSide(&b, targetContent)
	fmt.Fprintf(&b, ">>>>>>> %s\n", sourceBranch)
	return b.Bytes()
}

func writeSide(b *bytes.Buffer, content []byte) {
	if len(content) == 0 {
		return
	}
	b.Write(content)
	if content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
}

func unionPaths(maps ...map[string]fingerprint.Fingerprint) []string {
	seen := map[string]struct{}{}
	for _, m := range maps {
		for path := range m {
			seen[path] = struct{}{}
		}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
