// Package initcmd wires the "init" subcommand to repo.Init.
package initcmd

import (
	"fmt"
	"log/slog"

	"github.com/keshon/minigit/internal/cli"
	"github.com/keshon/minigit/internal/fs"
	"github.com/keshon/minigit/internal/repo"
)

type command struct{}

func (command) Name() string  { return "init" }
func (command) Brief() string { return "Create a repository in the current directory" }
func (command) Usage() string { return "init" }

func (command) Run(ctx *cli.Context) error {
	_, err := repo.Init(fs.NewOSFS(), ctx.Root, slog.Default())
	if err != nil {
		return err
	}
	fmt.Printf("Initialized empty repository in %s\n", ctx.Root)
	return nil
}

func init() {
	cli.Register(command{})
}
