package repo

import (
	"fmt"

	"github.com/keshon/minigit/internal/fingerprint"
	"github.com/keshon/minigit/internal/refstore"
)

// CheckoutResult reports the branch and tip HEAD now points at.
type CheckoutResult struct {
	Branch string
	Tip    string
}

// Checkout switches to target: it reconciles the working tree from the
// current HEAD snapshot to target's tip snapshot and rebinds HEAD, without
// creating a commit. It refuses if the index is dirty (staged changes, or
// a conflicted merge in progress) or if target does not exist.
func (r *Repository) Checkout(target string) (CheckoutResult, error) {
	st, err := r.loadState()
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(st.index) > 0 {
		return CheckoutResult{}, newError(DirtyIndex, "cannot checkout with staged changes", nil)
	}
	targetTip, ok := resolveBranch(st.branches, target)
	if !ok {
		return CheckoutResult{}, newError(UnknownBranch, fmt.Sprintf("unknown branch: %s", target), nil)
	}

	currentManifest, err := r.manifestMap(st.head.Tip)
	if err != nil {
		return CheckoutResult{}, err
	}
	targetManifest, err := r.manifestMap(targetTip)
	if err != nil {
		return CheckoutResult{}, err
	}

	if err := r.materializeManifest(currentManifest, targetManifest); err != nil {
		return CheckoutResult{}, err
	}

	st.head = refstore.Head{Branch: target, Tip: targetTip}
	if err := refstore.SaveHead(r.fsys, r.layout, st.head); err != nil {
		return CheckoutResult{}, newError(IoFailure, "update HEAD", err)
	}

	r.log.Info("checked out", "branch", target, "tip", targetTip.String())
	return CheckoutResult{Branch: target, Tip: targetTip.String()}, nil
}

// materializeManifest reconciles the working tree from "from" to "to":
// paths present in from but absent from to are removed, and every path in
// to is overwritten with its blob bytes. Paths untouched by either
// manifest are left alone.
func (r *Repository) materializeManifest(from, to map[string]fingerprint.Fingerprint) error {
	for path := range from {
		if _, ok := to[path]; !ok {
			if err := r.tree.RemoveFile(path); err != nil {
				return newError(IoFailure, fmt.Sprintf("remove %s", path), err)
			}
		}
	}
	for path, blob := range to {
		data, err := r.objects.Get(blob)
		if err != nil {
			return newError(CorruptObject, fmt.Sprintf("blob missing for %s", path), err)
		}
		if err := r.tree.WriteFile(path, data); err != nil {
			return newError(IoFailure, fmt.Sprintf("write %s", path), err)
		}
	}
	return nil
}
