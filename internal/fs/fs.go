// Package fs abstracts the filesystem operations the repository engine
// needs so that the CORE never calls os.* directly. Production code runs
// against OSFS; tests run against MemoryFS without touching disk.
package fs

import (
	"io"
	"os"
)

// FS is the minimal surface the repository engine needs from a filesystem.
type FS interface {
	Open(path string) (io.ReadCloser, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	CreateTempFile(dir, pattern string) (io.WriteCloser, string, error)
	IsNotExist(err error) bool
	Exists(path string) bool
}

// WriteFileAtomic writes data to path by writing to a temp file in the same
// directory, closing it, then renaming over the destination, so a crash
// mid-write never leaves a partially written file at the final path. The
// temp file is not fsynced before the rename.
func WriteFileAtomic(fsys FS, dir, finalPath string, data []byte) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, tmpPath, err := fsys.CreateTempFile(dir, "tmp-*")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := w.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}
	if err := fsys.Rename(tmpPath, finalPath); err != nil {
		fsys.Remove(tmpPath)
		return err
	}
	return nil
}
