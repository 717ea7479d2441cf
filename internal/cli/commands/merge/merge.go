// Package merge wires the "merge" subcommand to Repository.Merge,
// rendering the sum-typed MergeOutcome at this boundary — the core itself
// never prints.
package merge

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
	"github.com/keshon/minigit/internal/repo"
)

type command struct{}

func (command) Name() string  { return "merge" }
func (command) Brief() string { return "Merge a branch into the current branch" }
func (command) Usage() string { return "merge <branch>" }

func (command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: merge <branch>")
	}
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	result, err := r.Merge(ctx.Args[0])
	if err != nil {
		return err
	}
	switch result.Outcome {
	case repo.UpToDate:
		fmt.Println("already up to date")
	case repo.FastForwarded:
		fmt.Printf("fast-forwarded to %s\n", result.Tip)
	case repo.Clean:
		fmt.Printf("merge commit %s\n", result.NewCommit)
	case repo.Conflicted:
		fmt.Println("CONFLICT: resolve the following paths and commit:")
		for _, p := range result.ConflictPaths {
			fmt.Printf("\t%s\n", p)
		}
	}
	return nil
}

func init() {
	cli.Register(command{})
}
