package repo_test

import (
	"strings"
	"testing"

	"github.com/keshon/minigit/internal/repo"
)

func TestMergeSelfRefuses(t *testing.T) {
	r, _ := mustInit(t)
	if _, err := r.Merge("master"); err == nil {
		t.Fatal("expected an error merging a branch into itself")
	} else if kindOf(err) != repo.SelfMerge {
		t.Fatalf("expected SelfMerge, got %v", err)
	}
}

func TestMergeFastForward(t *testing.T) {
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
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}
	if _, err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := fsys.WriteFile("/work/a.txt", []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	featureCommit, err := r.Commit("on feature")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := r.Checkout("master"); err != nil {
		t.Fatalf("Checkout master: %v", err)
	}
	result, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Outcome != repo.FastForwarded || result.Tip != featureCommit.ID {
		t.Fatalf("expected a fast-forward to %s, got %+v", featureCommit.ID, result)
	}
	data, err := fsys.ReadFile("/work/a.txt")
	if err != nil || string(data) != "v2\n" {
		t.Fatalf("expected working tree fast-forwarded, got %q err=%v", data, err)
	}
}

func TestMergeUpToDate(t *testing.T) {
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
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	result, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Outcome != repo.UpToDate {
		t.Fatalf("expected UpToDate, got %+v", result)
	}
}

func TestMergeCleanThreeWay(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/shared.txt", []byte("base\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("shared.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("root"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	// On master, add a new file.
	if err := fsys.WriteFile("/work/master-only.txt", []byte("from master\n"), 0o644); err != nil {
		t.Fatalf("seed master-only: %v", err)
	}
	if _, err := r.Add("master-only.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("master adds a file"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// On feature, add a different new file.
	if _, err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := fsys.WriteFile("/work/feature-only.txt", []byte("from feature\n"), 0o644); err != nil {
		t.Fatalf("seed feature-only: %v", err)
	}
	if _, err := r.Add("feature-only.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("feature adds a file"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := r.Checkout("master"); err != nil {
		t.Fatalf("Checkout master: %v", err)
	}
	result, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Outcome != repo.Clean {
		t.Fatalf("expected a clean merge, got %+v", result)
	}
	for _, path := range []string{"shared.txt", "master-only.txt", "feature-only.txt"} {
		if !fsys.Exists("/work/" + path) {
			t.Fatalf("expected %s to exist after merge", path)
		}
	}
	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Staged) != 0 {
		t.Fatalf("expected a clean index after a clean merge, got %+v", status.Staged)
	}
}

func TestMergeConflict(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("base\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("root"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	if err := fsys.WriteFile("/work/a.txt", []byte("master change\n"), 0o644); err != nil {
		t.Fatalf("mutate on master: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("master edits a.txt"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := fsys.WriteFile("/work/a.txt", []byte("feature change\n"), 0o644); err != nil {
		t.Fatalf("mutate on feature: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("feature edits a.txt"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := r.Checkout("master"); err != nil {
		t.Fatalf("Checkout master: %v", err)
	}
	result, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Outcome != repo.Conflicted {
		t.Fatalf("expected a conflicted merge, got %+v", result)
	}
	if len(result.ConflictPaths) != 1 || result.ConflictPaths[0] != "a.txt" {
		t.Fatalf("expected a.txt flagged as conflicting, got %+v", result.ConflictPaths)
	}

	marked, err := fsys.ReadFile("/work/a.txt")
	if err != nil {
		t.Fatalf("read conflict markers: %v", err)
	}
	text := string(marked)
	if !strings.Contains(text, "<<<<<<< HEAD (master)\n") ||
		!strings.Contains(text, "master change\n") ||
		!strings.Contains(text, "=======\n") ||
		!strings.Contains(text, "feature change\n") ||
		!strings.Contains(text, ">>>>>>> feature\n") {
		t.Fatalf("unexpected conflict marker content: %q", text)
	}

	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Merging {
		t.Fatal("expected status to report a merge in progress")
	}

	// Resolve by committing the conflict-marked file as-is.
	if _, err := r.Commit("resolve conflict"); err != nil {
		t.Fatalf("Commit resolution: %v", err)
	}
	status, err = r.Status()
	if err != nil {
		t.Fatalf("Status after resolution: %v", err)
	}
	if status.Merging {
		t.Fatal("expected merge state cleared after resolving commit")
	}
}

func TestMergeUnknownBranchRefuses(t *testing.T) {
	r, _ := mustInit(t)
	if _, err := r.Merge("nonexistent"); err == nil {
		t.Fatal("expected an error merging an unknown branch")
	} else if kindOf(err) != repo.UnknownBranch {
		t.Fatalf("expected UnknownBranch, got %v", err)
	}
}
