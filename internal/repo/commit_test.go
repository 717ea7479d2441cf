package repo_test

import (
	"testing"
)

func TestCommitWithEmptyIndexReportsEmpty(t *testing.T) {
	r, _ := mustInit(t)
	result, err := r.Commit("nothing staged")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !result.Empty {
		t.Fatalf("expected an empty commit result, got %+v", result)
	}
}

func TestCommitProducesRetrievableID(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	result, err := r.Commit("first commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Empty || result.ID == "" {
		t.Fatalf("expected a populated commit result, got %+v", result)
	}

	entries, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != result.ID || entries[0].Message != "first commit" {
		t.Fatalf("unexpected log: %+v", entries)
	}

	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Staged) != 0 {
		t.Fatalf("expected index cleared after commit, got %+v", status.Staged)
	}
}

func TestCommitManifestReflectsBytesAtCommitTimeNotAddTime(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("v1\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Mutate the file after staging but before committing.
	if err := fsys.WriteFile("/work/a.txt", []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("mutate file: %v", err)
	}
	result, err := r.Commit("second version")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// The working tree still holds v2; a commit that captured the add-time
	// bytes (v1) would differ from it.
	diff, err := r.Diff(result.ID)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if diff != "" {
		t.Fatalf("expected the commit to match the working tree's commit-time bytes, got %q", diff)
	}
}

func TestSecondCommitLinksParent(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("v1\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	first, err := r.Commit("first")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := fsys.WriteFile("/work/a.txt", []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := r.Commit("second")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	entries, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %+v", entries)
	}
	if entries[0].ID != second.ID || entries[0].Parent != first.ID {
		t.Fatalf("expected most-recent-first with correct parent link, got %+v", entries)
	}
	if entries[1].ID != first.ID || entries[1].Parent != "" {
		t.Fatalf("expected root commit to have empty parent, got %+v", entries[1])
	}
}
