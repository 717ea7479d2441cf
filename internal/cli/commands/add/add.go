// Package add wires the "add" subcommand to Repository.Add.
package add

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "add" }
func (command) Brief() string { return "Stage a file for the next commit" }
func (command) Usage() string { return "add <path>" }

func (command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: add <path>")
	}
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	result, err := r.Add(ctx.Args[0])
	if err != nil {
		return err
	}
	fmt.Printf("staged %s (%s)\n", result.Path, result.Blob)
	return nil
}

func init() {
	cli.Register(command{})
}
