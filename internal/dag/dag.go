// Package dag walks the single-parent commit history graph: ancestor-set
// construction, ancestry tests and common-ancestor discovery, all in terms
// of a minimal CommitSource so the algorithms don't depend on how commits
// are stored.
package dag

import (
	"fmt"

	"github.com/keshon/minigit/internal/fingerprint"
)

// CommitSource resolves a commit id to its parent id. The empty fingerprint
// denotes "no parent" (a root commit).
type CommitSource interface {
	ParentOf(id fingerprint.Fingerprint) (fingerprint.Fingerprint, error)
}

// Ancestors returns the set of commit ids reachable from id by following
// parent links, including id itself. The empty fingerprint yields an empty
// set.
func Ancestors(src CommitSource, id fingerprint.Fingerprint) (map[fingerprint.Fingerprint]struct{}, error) {
	set := map[fingerprint.Fingerprint]struct{}{}
	cur := id
	for !cur.Empty() {
		if _, ok := set[cur]; ok {
			break
		}
		set[cur] = struct{}{}
		parent, err := src.ParentOf(cur)
		if err != nil {
			return nil, fmt.Errorf("dag: ancestors of %s: %w", id, err)
		}
		cur = parent
	}
	return set, nil
}

// IsAncestor reports whether ancestor appears in descendant's ancestor
// chain (ancestor == descendant counts as true, matching the fast-forward
// test's reflexive use of this predicate).
func IsAncestor(src CommitSource, ancestor, descendant fingerprint.Fingerprint) (bool, error) {
	if ancestor.Empty() {
		return true, nil
	}
	set, err := Ancestors(src, descendant)
	if err != nil {
		return false, err
	}
	_, ok := set[ancestor]
	return ok, nil
}

// FindCommonAncestor locates the nearest-to-b commit reachable from both a
// and b, walking a's full ancestor chain first and then a breadth-first
// walk of b's chain so the first hit is the one closest to b. Returns the
// empty fingerprint if a and b share no ancestor (including when either
// input is empty).
func FindCommonAncestor(src CommitSource, a, b fingerprint.Fingerprint) (fingerprint.Fingerprint, error) {
	if a.Empty() || b.Empty() {
		return "", nil
	}

	seen, err := Ancestors(src, a)
	if err != nil {
		return "", fmt.Errorf("dag: common ancestor: %w", err)
	}

	visited := map[fingerprint.Fingerprint]struct{}{}
	queue := []fingerprint.Fingerprint{b}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id.Empty() {
			continue
		}
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		if _, ok := seen[id]; ok {
			return id, nil
		}
		parent, err := src.ParentOf(id)
		if err != nil {
			return "", fmt.Errorf("dag: common ancestor: %w", err)
		}
		if !parent.Empty() {
			queue = append(queue, parent)
		}
	}
	return "", nil
}

// Walk returns the linear history starting at id, most recent first,
// following parent links to the root.
func Walk(src CommitSource, id fingerprint.Fingerprint) ([]fingerprint.Fingerprint, error) {
	var ids []fingerprint.Fingerprint
	cur := id
	for !cur.Empty() {
		ids = append(ids, cur)
		parent, err := src.ParentOf(cur)
		if err != nil {
			return nil, fmt.Errorf("dag: walk from %s: %w", id, err)
		}
		cur = parent
	}
	return ids, nil
}
