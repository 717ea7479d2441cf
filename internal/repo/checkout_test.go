package repo_test

import (
	"testing"

	"github.com/keshon/minigit/internal/repo"
)

func TestCheckoutSwitchesWorkingTree(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("on master\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("master commit"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}

	if _, err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if err := fsys.WriteFile("/work/b.txt", []byte("on feature\n"), 0o644); err != nil {
		t.Fatalf("seed feature file: %v", err)
	}
	if _, err := r.Add("b.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("feature commit"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := r.Checkout("master"); err != nil {
		t.Fatalf("Checkout back to master: %v", err)
	}
	if fsys.Exists("/work/b.txt") {
		t.Fatal("expected b.txt to be removed switching back to master")
	}
	data, err := fsys.ReadFile("/work/a.txt")
	if err != nil || string(data) != "on master\n" {
		t.Fatalf("expected a.txt preserved on master, got %q err=%v", data, err)
	}
}

func TestCheckoutRefusesWithDirtyIndex(t *testing.T) {
	r, fsys := mustInit(t)
	if err := fsys.WriteFile("/work/a.txt", []byte("x\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := r.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Branch("feature"); err != nil {
		t.Fatalf("Branch: %v", err)
	}
	if _, err := r.Checkout("feature"); err == nil {
		t.Fatal("expected checkout to refuse with staged changes")
	} else if kindOf(err) != repo.DirtyIndex {
		t.Fatalf("expected DirtyIndex, got %v", err)
	}
}

func TestCheckoutUnknownBranchRefuses(t *testing.T) {
	r, _ := mustInit(t)
	if _, err := r.Checkout("nope"); err == nil {
		t.Fatal("expected an error for an unknown branch")
	} else if kindOf(err) != repo.UnknownBranch {
		t.Fatalf("expected UnknownBranch, got %v", err)
	}
}
