// Package objectstore implements the content-addressed blob store under
// <repo>/objects. Writes are idempotent and are made durable (via a
// temp-file-then-rename) before any reference update is allowed to observe
// them, per the engine's crash-consistency ordering.
package objectstore

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/keshon/minigit/internal/fingerprint"
	fsabs "github.com/keshon/minigit/internal/fs"
)

// ErrNotFound is returned by Get when no object exists for a fingerprint.
var ErrNotFound = errors.New("object not found")

// Store is a content-addressed byte store rooted at dir.
type Store struct {
	fsys fsabs.FS
	dir  string
}

// New constructs a Store that persists objects under dir using fsys.
func New(fsys fsabs.FS, dir string) *Store {
	return &Store{fsys: fsys, dir: dir}
}

// Put writes data under its fingerprint if not already present and returns
// the fingerprint. Put is idempotent: writing the same bytes twice performs
// no second write and returns the same fingerprint.
func (s *Store) Put(data []byte) (fingerprint.Fingerprint, error) {
	fp := fingerprint.Of(data)
	path := s.path(fp)
	if s.fsys.Exists(path) {
		return fp, nil
	}
	if err := fsabs.WriteFileAtomic(s.fsys, s.dir, path, data); err != nil {
		return "", fmt.Errorf("objectstore: put %s: %w", fp, err)
	}
	return fp, nil
}

// PutAt writes data under the caller-supplied fingerprint fp rather than
// under fingerprint.Of(data). Commit objects need this: a commit's id is
// derived from its constituent fields (§3), not from the encoded text
// commitcodec.Encode produces, so the object-store key and the hash of the bytes
// on disk are intentionally different. PutAt is idempotent like Put.
func (s *Store) PutAt(fp fingerprint.Fingerprint, data []byte) error {
	path := s.path(fp)
	if s.fsys.Exists(path) {
		return nil
	}
	if err := fsabs.WriteFileAtomic(s.fsys, s.dir, path, data); err != nil {
		return fmt.Errorf("objectstore: put %s: %w", fp, err)
	}
	return nil
}

// Get reads the bytes stored under fp, or ErrNotFound if absent.
func (s *Store) Get(fp fingerprint.Fingerprint) ([]byte, error) {
	data, err := s.fsys.ReadFile(s.path(fp))
	if err != nil {
		if s.fsys.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("objectstore: get %s: %w", fp, err)
	}
	return data, nil
}

// Has reports whether an object exists for fp.
func (s *Store) Has(fp fingerprint.Fingerprint) bool {
	return s.fsys.Exists(s.path(fp))
}

func (s *Store) path(fp fingerprint.Fingerprint) string {
	return filepath.Join(s.dir, fp.String())
}
