// Package repo is the operation façade: it composes the object store,
// commit codec, reference store, working tree, DAG and diff engines into
// the public operations a CLI collaborator drives. Every operation loads
// references at entry and persists them at exit; no state survives between
// calls except what is written to disk, per the engine's "filesystem is the
// source of truth" policy.
package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/minigit/internal/commitcodec"
	"github.com/keshon/minigit/internal/config"
	"github.com/keshon/minigit/internal/dag"
	"github.com/keshon/minigit/internal/fingerprint"
	fsabs "github.com/keshon/minigit/internal/fs"
	"github.com/keshon/minigit/internal/objectstore"
	"github.com/keshon/minigit/internal/refstore"
	"github.com/keshon/minigit/internal/worktree"
)

// Repository is a handle onto an opened repository. It is constructed by
// Init or Open and exposes the operation surface as methods; it holds no
// mutable state of its own beyond the filesystem abstraction and the
// logger, matching the re-architecture guidance against a mutable
// singleton.
type Repository struct {
	fsys    fsabs.FS
	layout  config.Layout
	objects *objectstore.Store
	tree    *worktree.Tree
	log     *slog.Logger
}

func newRepository(fsys fsabs.FS, root string, log *slog.Logger) *Repository {
	layout := config.NewLayout(root)
	if log == nil {
		log = slog.Default()
	}
	return &Repository{
		fsys:    fsys,
		layout:  layout,
		objects: objectstore.New(fsys, layout.ObjectsDir()),
		tree:    worktree.New(fsys, layout),
		log:     log,
	}
}

// Init creates the repository scaffolding rooted at root: the objects and
// refs directories, and a default branch named master with an empty tip.
// It refuses if a repository already exists there.
func Init(fsys fsabs.FS, root string, log *slog.Logger) (*Repository, error) {
	r := newRepository(fsys, root, log)
	if fsys.Exists(r.layout.Repo) {
		return nil, newError(AlreadyInitialized, fmt.Sprintf("repository already exists at %s", root), nil)
	}
	if err := fsys.MkdirAll(r.layout.ObjectsDir(), 0o755); err != nil {
		return nil, newError(IoFailure, "create objects directory", err)
	}
	if err := fsys.MkdirAll(r.layout.RefsDir(), 0o755); err != nil {
		return nil, newError(IoFailure, "create refs directory", err)
	}
	branches := map[string]fingerprint.Fingerprint{config.DefaultBranch: ""}
	if err := refstore.SaveBranches(fsys, r.layout, branches); err != nil {
		return nil, newError(IoFailure, "write branch table", err)
	}
	if err := refstore.SaveHead(fsys, r.layout, refstore.Head{Branch: config.DefaultBranch}); err != nil {
		return nil, newError(IoFailure, "write HEAD", err)
	}
	r.log.Info("repository initialized", "root", root, "branch", config.DefaultBranch)
	return r, nil
}

// Open opens an existing repository rooted at root. It refuses if no
// repository exists there.
func Open(fsys fsabs.FS, root string, log *slog.Logger) (*Repository, error) {
	r := newRepository(fsys, root, log)
	if !fsys.Exists(r.layout.Repo) {
		return nil, newError(NotInitialized, fmt.Sprintf("no repository at %s", root), nil)
	}
	return r, nil
}

// state is the snapshot of references an operation loads at entry.
type state struct {
	head     refstore.Head
	branches map[string]fingerprint.Fingerprint
	index    map[string]fingerprint.Fingerprint
	merge    refstore.MergeState
}

func (r *Repository) loadState() (state, error) {
	head, err := refstore.LoadHead(r.fsys, r.layout)
	if err != nil {
		return state{}, newError(IoFailure, "load HEAD", err)
	}
	branches, err := refstore.LoadBranches(r.fsys, r.layout)
	if err != nil {
		return state{}, newError(IoFailure, "load branch table", err)
	}
	index, err := refstore.LoadIndex(r.fsys, r.layout)
	if err != nil {
		return state{}, newError(IoFailure, "load index", err)
	}
	merge, err := refstore.LoadMergeState(r.fsys, r.layout)
	if err != nil {
		return state{}, newError(IoFailure, "load merge state", err)
	}
	return state{head: head, branches: branches, index: index, merge: merge}, nil
}

// getCommit resolves id to its decoded Commit, failing with CorruptObject
// if the object is missing or unparsable.
func (r *Repository) getCommit(id fingerprint.Fingerprint) (commitcodec.Commit, error) {
	if id.Empty() {
		return commitcodec.Commit{}, nil
	}
	data, err := r.objects.Get(id)
	if err != nil {
		return commitcodec.Commit{}, newError(CorruptObject, fmt.Sprintf("commit %s missing", id), err)
	}
	commit, err := commitcodec.Decode(id, data)
	if err != nil {
		return commitcodec.Commit{}, newError(CorruptObject, fmt.Sprintf("commit %s unparsable", id), err)
	}
	return commit, nil
}

// manifestMap resolves a commit id to a path -> blob fingerprint map. An
// empty id yields an empty manifest (no commits yet on the branch).
func (r *Repository) manifestMap(id fingerprint.Fingerprint) (map[string]fingerprint.Fingerprint, error) {
	m := map[string]fingerprint.Fingerprint{}
	if id.Empty() {
		return m, nil
	}
	commit, err := r.getCommit(id)
	if err != nil {
		return nil, err
	}
	for _, e := range commit.Manifest {
		m[e.Path] = e.Blob
	}
	return m, nil
}

// dagSource adapts the façade's commit resolution to dag.CommitSource.
type dagSource struct{ r *Repository }

func (d dagSource) ParentOf(id fingerprint.Fingerprint) (fingerprint.Fingerprint, error) {
	commit, err := d.r.getCommit(id)
	if err != nil {
		return "", err
	}
	return commit.Parent, nil
}

func (r *Repository) dag() dag.CommitSource { return dagSource{r: r} }

func resolveBranch(branches map[string]fingerprint.Fingerprint, name string) (fingerprint.Fingerprint, bool) {
	tip, ok := branches[name]
	return tip, ok
}
