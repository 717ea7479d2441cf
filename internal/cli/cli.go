// Package cli is a thin command-registry harness over the repo façade.
// Argument parsing, usage banners and the process entry point are
// explicitly outside the engine's scope (§1): this package is the external
// CLI collaborator the core is consumed by, not part of it.
package cli

import (
	"log/slog"

	"github.com/keshon/minigit/internal/fs"
	"github.com/keshon/minigit/internal/repo"
)

// Context carries the arguments remaining after the command name was
// consumed, and the working directory the CLI was invoked in.
type Context struct {
	Args []string
	Root string
}

// OpenRepo opens the repository rooted at ctx.Root using the real
// filesystem. Commands that need an already-initialized repository call
// this rather than constructing their own Repository.
func (ctx *Context) OpenRepo() (*repo.Repository, error) {
	return repo.Open(fs.NewOSFS(), ctx.Root, slog.Default())
}

// Command is one registered subcommand.
type Command interface {
	Name() string
	Brief() string
	Usage() string
	Run(ctx *Context) error
}

var registry = map[string]Command{}
var order []string

// Register adds cmd to the global command set.
func Register(cmd Command) {
	if _, exists := registry[cmd.Name()]; !exists {
		order = append(order, cmd.Name())
	}
	registry[cmd.Name()] = cmd
}

// Get returns the command named name, if registered.
func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// All returns every registered command in registration order.
func All() []Command {
	cmds := make([]Command, 0, len(order))
	for _, name := range order {
		cmds = append(cmds, registry[name])
	}
	return cmds
}
