// Package config centralizes the on-disk layout of a repository so that no
// other package hard-codes a directory or file name.
package config

import "path/filepath"

// RepoDirName is the default name of the repository directory inside the
// working tree root.
const RepoDirName = ".minigit"

// DefaultBranch is the branch name seeded by Init and assumed by reference
// loaders when the branch table is empty or missing.
const DefaultBranch = "master"

// Layout resolves every path the engine reads or writes, rooted at a
// working-tree directory.
type Layout struct {
	Root string // working tree root
	Repo string // Root/.minigit
}

// NewLayout builds a Layout rooted at root, using the default repo dir name.
func NewLayout(root string) Layout {
	return Layout{Root: root, Repo: filepath.Join(root, RepoDirName)}
}

func (l Layout) ObjectsDir() string    { return filepath.Join(l.Repo, "objects") }
func (l Layout) RefsDir() string       { return filepath.Join(l.Repo, "refs") }
func (l Layout) BranchesFile() string  { return filepath.Join(l.RefsDir(), "branches") }
func (l Layout) HeadFile() string      { return filepath.Join(l.Repo, "HEAD") }
func (l Layout) IndexFile() string     { return filepath.Join(l.Repo, "index") }
func (l Layout) MergeHeadFile() string { return filepath.Join(l.Repo, "MERGE_HEAD") }
