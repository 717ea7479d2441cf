package repo_test

import (
	"strings"
	"testing"
)

func TestDiffWorkingVsIndex(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := fsys.WriteFile("/work/a.txt", []byte("a\nB\nc\n"), 0o644); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	out, err := r.Diff()
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(out, "-b\n") || !strings.Contains(out, "+B\n") {
		t.Fatalf("expected an edit script for a.txt, got %q", out)
	}
}

func TestDiffStagedVsHead(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("v1\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("root"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := fsys.WriteFile("/work/a.txt", []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("re-Add: %v", err)
	}

	out, err := r.Diff("--staged")
	if err != nil {
		t.Fatalf("Diff --staged: %v", err)
	}
	if !strings.Contains(out, "-v1\n") || !strings.Contains(out, "+v2\n") {
		t.Fatalf("expected staged-vs-head diff, got %q", out)
	}
}

func TestDiffCommitToCommit(t *testing.T) {
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
		t.Fatalf("re-Add: %v", err)
	}
	second, err := r.Commit("second")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	out, err := r.Diff(first.ID, second.ID)
	if err != nil {
		t.Fatalf("Diff(a, b): %v", err)
	}
	if !strings.Contains(out, "-v1\n") || !strings.Contains(out, "+v2\n") {
		t.Fatalf("expected commit-to-commit diff, got %q", out)
	}
}
