// Package branch wires the "branch" subcommand to Repository.Branch and
// Repository.ListBranches.
package branch

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "branch" }
func (command) Brief() string { return "Create a branch, or list branches with none given" }
func (command) Usage() string { return "branch [name]" }

func (command) Run(ctx *cli.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	if len(ctx.Args) == 0 {
		branches, err := r.ListBranches()
		if err != nil {
			return err
		}
		for _, b := range branches {
			marker := "  "
			if b.Current {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, b.Name)
		}
		return nil
	}
	if err := r.Branch(ctx.Args[0]); err != nil {
		return err
	}
	fmt.Printf("created branch %s\n", ctx.Args[0])
	return nil
}

func init() {
	cli.Register(command{})
}
