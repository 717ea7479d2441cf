// Package diff wires the "diff" subcommand to Repository.Diff.
package diff

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "diff" }
func (command) Brief() string { return "Show a unified diff" }
func (command) Usage() string { return "diff [--staged | <commit> | <commit> <commit>]" }

func (command) Run(ctx *cli.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	out, err := r.Diff(ctx.Args...)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func init() {
	cli.Register(command{})
}
