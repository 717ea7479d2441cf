// Command minigit is the CLI collaborator described in §1 as explicitly
// outside the engine's scope: it parses arguments, resolves a subcommand
// and renders the façade's structured outcomes. The core never prints or
// exits a process itself.
package main

import (
	"fmt"
	"os"

	"github.com/keshon/minigit/internal/cli"

	_ "github.com/keshon/minigit/internal/cli/commands/add"
	_ "github.com/keshon/minigit/internal/cli/commands/branch"
	_ "github.com/keshon/minigit/internal/cli/commands/checkout"
	_ "github.com/keshon/minigit/internal/cli/commands/commit"
	_ "github.com/keshon/minigit/internal/cli/commands/diff"
	_ "github.com/keshon/minigit/internal/cli/commands/initcmd"
	_ "github.com/keshon/minigit/internal/cli/commands/log"
	_ "github.com/keshon/minigit/internal/cli/commands/merge"
	_ "github.com/keshon/minigit/internal/cli/commands/status"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: minigit <command> [args...]")
		printCommands()
		os.Exit(1)
	}

	cmd, ok := cli.Get(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printCommands()
		os.Exit(1)
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx := &cli.Context{Args: os.Args[2:], Root: root}
	if err := cmd.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func printCommands() {
	fmt.Fprintln(os.Stderr, "available commands:")
	for _, cmd := range cli.All() {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", cmd.Name(), cmd.Brief())
	}
}
