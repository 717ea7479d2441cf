// Package checkout wires the "checkout" subcommand to Repository.Checkout.
package checkout

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "checkout" }
func (command) Brief() string { return "Switch to another branch" }
func (command) Usage() string { return "checkout <branch>" }

func (command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: checkout <branch>")
	}
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	result, err := r.Checkout(ctx.Args[0])
	if err != nil {
		return err
	}
	fmt.Printf("switched to branch %s\n", result.Branch)
	return nil
}

func init() {
	cli.Register(command{})
}
