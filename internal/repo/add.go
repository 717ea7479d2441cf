package repo

import (
	"fmt"

	"github.com/keshon/minigit/internal/refstore"
)

// AddResult reports the path staged and the blob fingerprint it now maps
// to in the index.
type AddResult struct {
	Path string
	Blob string
}

// Add stages path for the next commit: it reads the file's current bytes,
// writes a blob for them, and inserts path into the index. The blob write
// happens before the index write so a crash mid-operation never leaves the
// index pointing at an object that doesn't exist. Add refuses if path is
// not present in the working tree; the index is left unchanged.
func (r *Repository) Add(path string) (AddResult, error) {
	if !r.tree.Exists(path) {
		return AddResult{}, newError(PathNotFound, fmt.Sprintf("no such file: %s", path), nil)
	}
	data, err := r.tree.ReadFile(path)
	if err != nil {
		return AddResult{}, newError(IoFailure, fmt.Sprintf("read %s", path), err)
	}

	st, err := r.loadState()
	if err != nil {
		return AddResult{}, err
	}

	blob, err := r.objects.Put(data)
	if err != nil {
		return AddResult{}, newError(IoFailure, fmt.Sprintf("stage %s", path), err)
	}

	st.index[path] = blob
	if err := refstore.SaveIndex(r.fsys, r.layout, st.index); err != nil {
		return AddResult{}, newError(IoFailure, "save index", err)
	}

	r.log.Info("staged path", "path", path, "blob", blob.String())
	return AddResult{Path: path, Blob: blob.String()}, nil
}
