package repo_test

import (
	"testing"
)

func TestStatusReportsStagedModifiedUntracked(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/tracked.txt", []byte("v1\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("tracked.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("root"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Modify the committed file without staging it.
	if err := fsys.WriteFile("/work/tracked.txt", []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	// Stage a new file, then mutate it again after staging.
	if err := fsys.WriteFile("/work/staged.txt", []byte("staged-v1\n"), 0o644); err != nil {
		t.Fatalf("seed staged: %v", err)
	}
	if _, err := r.Add("staged.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := fsys.WriteFile("/work/staged.txt", []byte("staged-v2\n"), 0o644); err != nil {
		t.Fatalf("mutate staged: %v", err)
	}
	// Untracked file.
	if err := fsys.WriteFile("/work/loose.txt", []byte("nobody owns me\n"), 0o644); err != nil {
		t.Fatalf("seed untracked: %v", err)
	}

	status, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Branch != "master" {
		t.Fatalf("expected branch master, got %s", status.Branch)
	}
	if len(status.Staged) != 1 || status.Staged[0] != "staged.txt" {
		t.Fatalf("unexpected staged set: %+v", status.Staged)
	}
	wantModified := map[string]bool{"tracked.txt": true, "staged.txt": true}
	if len(status.Modified) != len(wantModified) {
		t.Fatalf("unexpected modified set: %+v", status.Modified)
	}
	for _, m := range status.Modified {
		if !wantModified[m] {
			t.Fatalf("unexpected modified entry %s", m)
		}
	}
	if len(status.Untracked) != 1 || status.Untracked[0] != "loose.txt" {
		t.Fatalf("unexpected untracked set: %+v", status.Untracked)
	}
}
