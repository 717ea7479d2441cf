package main

import (
	"errors"

	"github.com/keshon/minigit/internal/repo"
)

// exitCodeFor maps a façade error's Kind to a process exit code. This
// mapping is a demonstration of the CLI collaborator's own choice, not
// part of the core's contract: the core only promises a Kind, never a
// numeric code.
func exitCodeFor(err error) int {
	var repoErr *repo.Error
	if !errors.As(err, &repoErr) {
		return 1
	}
	switch repoErr.Kind {
	case repo.DirtyIndex, repo.UnrelatedHistories, repo.SelfMerge:
		return 2
	default:
		return 1
	}
}
