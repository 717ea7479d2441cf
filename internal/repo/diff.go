package repo

import (
	"fmt"
	"sort"

	"github.com/keshon/minigit/internal/diffengine"
	"github.com/keshon/minigit/internal/fingerprint"
)

// Diff renders the unified listing described in §4.9. With no options it
// compares working tree against the index (each indexed path's on-disk
// bytes against its staged snapshot blob); "--staged"/"--cached" compares
// the index against HEAD's commit; a single fingerprint compares the
// working tree against that commit; two fingerprints compare commit to
// commit.
func (r *Repository) Diff(opts ...string) (string, error) {
	switch len(opts) {
	case 0:
		return r.diffWorkingVsIndex()
	case 1:
		if opts[0] == "--staged" || opts[0] == "--cached" {
			return r.diffIndexVsHead()
		}
		return r.diffWorkingVsCommit(fingerprint.Fingerprint(opts[0]))
	case 2:
		return r.diffCommitToCommit(fingerprint.Fingerprint(opts[0]), fingerprint.Fingerprint(opts[1]))
	default:
		return "", newError(IoFailure, "diff accepts at most two options", nil)
	}
}

func (r *Repository) diffWorkingVsIndex() (string, error) {
	st, err := r.loadState()
	if err != nil {
		return "", err
	}
	paths := make([]string, 0, len(st.index))
	for path := range st.index {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out string
	for _, path := range paths {
		staged, err := r.blobOrEmpty(st.index[path])
		if err != nil {
			return "", err
		}
		working, err := r.tree.ReadFile(path)
		if err != nil {
			return "", newError(IoFailure, "read "+path, err)
		}
		out += diffengine.Unified(path, staged, working)
	}
	return out, nil
}

func (r *Repository) diffIndexVsHead() (string, error) {
	st, err := r.loadState()
	if err != nil {
		return "", err
	}
	headManifest, err := r.manifestMap(st.head.Tip)
	if err != nil {
		return "", err
	}
	paths := unionPaths(headManifest, st.index)

	var out string
	for _, path := range paths {
		committed, err := r.blobOrEmpty(headManifest[path])
		if err != nil {
			return "", err
		}
		staged, err := r.blobOrEmpty(st.index[path])
		if err != nil {
			return "", err
		}
		out += diffengine.Unified(path, committed, staged)
	}
	return out, nil
}

func (r *Repository) diffWorkingVsCommit(id fingerprint.Fingerprint) (string, error) {
	manifest, err := r.manifestMap(id)
	if err != nil {
		return "", err
	}
	workFiles, err := r.tree.ListFiles()
	if err != nil {
		return "", newError(IoFailure, "scan working tree", err)
	}
	paths := unionPathList(mapKeys(manifest), workFiles)

	var out string
	for _, path := range paths {
		committed, err := r.blobOrEmpty(manifest[path])
		if err != nil {
			return "", err
		}
		working, err := r.tree.ReadFile(path)
		if err != nil {
			return "", newError(IoFailure, "read "+path, err)
		}
		out += diffengine.Unified(path, committed, working)
	}
	return out, nil
}

func (r *Repository) diffCommitToCommit(a, b fingerprint.Fingerprint) (string, error) {
	manifestA, err := r.manifestMap(a)
	if err != nil {
		return "", err
	}
	manifestB, err := r.manifestMap(b)
	if err != nil {
		return "", err
	}
	paths := unionPaths(manifestA, manifestB)

	var out string
	for _, path := range paths {
		left, err := r.blobOrEmpty(manifestA[path])
		if err != nil {
			return "", err
		}
		right, err := r.blobOrEmpty(manifestB[path])
		if err != nil {
			return "", err
		}
		out += diffengine.Unified(path, left, right)
	}
	return out, nil
}

func (r *Repository) blobOrEmpty(blob fingerprint.Fingerprint) ([]byte, error) {
	if blob.Empty() {
		return nil, nil
	}
	data, err := r.objects.Get(blob)
	if err != nil {
		return nil, newError(CorruptObject, fmt.Sprintf("blob %s missing", blob), err)
	}
	return data, nil
}

func mapKeys(m map[string]fingerprint.Fingerprint) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func unionPathList(lists ...[]string) []string {
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, p := range list {
			seen[p] = struct{}{}
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
