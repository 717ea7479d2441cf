// Package commit wires the "commit" subcommand to Repository.Commit.
package commit

import (
	"fmt"
	"strings"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "commit" }
func (command) Brief() string { return "Record a new commit from the index" }
func (command) Usage() string { return "commit <message>" }

func (command) Run(ctx *cli.Context) error {
	if len(ctx.Args) == 0 {
		return fmt.Errorf("usage: commit <message>")
	}
	message := strings.Join(ctx.Args, " ")

	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	result, err := r.Commit(message)
	if err != nil {
		return err
	}
	if result.Empty {
		fmt.Println("nothing to commit, index is empty")
		return nil
	}
	fmt.Printf("committed %s\n", result.ID)
	return nil
}

func init() {
	cli.Register(command{})
}
