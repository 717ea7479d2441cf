package repo

import (
	"fmt"
	"sort"

	"github.com/keshon/minigit/internal/refstore"
)

// BranchInfo describes one entry in the branch table.
type BranchInfo struct {
	Name    string
	Tip     string
	Current bool
}

// Branch creates a new branch named name pointing at the current HEAD
// commit. It refuses if the name is already taken.
func (r *Repository) Branch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return err
	}
	if _, exists := st.branches[name]; exists {
		return newError(BranchExists, fmt.Sprintf("branch already exists: %s", name), nil)
	}
	st.branches[name] = st.head.Tip
	if err := refstore.SaveBranches(r.fsys, r.layout, st.branches); err != nil {
		return newError(IoFailure, "save branch table", err)
	}
	r.log.Info("branch created", "name", name, "tip", st.head.Tip.String())
	return nil
}

// ListBranches enumerates every branch, sorted by name, marking which one
// HEAD currently points at.
func (r *Repository) ListBranches() ([]BranchInfo, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(st.branches))
	for name := range st.branches {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]BranchInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, BranchInfo{
			Name:    name,
			Tip:     st.branches[name].String(),
			Current: name == st.head.Branch,
		})
	}
	return infos, nil
}
