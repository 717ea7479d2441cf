// Package log wires the "log" subcommand to Repository.Log.
package log

import (
	"fmt"
	"strconv"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "log" }
func (command) Brief() string { return "Show commit history from HEAD" }
func (command) Usage() string { return "log [limit]" }

func (command) Run(ctx *cli.Context) error {
	limit := 0
	if len(ctx.Args) == 1 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return fmt.Errorf("limit must be an integer: %w", err)
		}
		limit = n
	}

	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	entries, err := r.Log(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no commits yet")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("commit %s\n", e.ID)
		fmt.Printf("Date:   %s\n\n", e.Timestamp)
		fmt.Printf("    %s\n\n", e.Message)
	}
	return nil
}

func init() {
	cli.Register(command{})
}
