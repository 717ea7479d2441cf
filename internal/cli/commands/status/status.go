// Package status wires the "status" subcommand to Repository.Status.
package status

import (
	"fmt"

	"github.com/keshon/minigit/internal/cli"
)

type command struct{}

func (command) Name() string  { return "status" }
func (command) Brief() string { return "Show branch, merge state, and staged/modified/untracked files" }
func (command) Usage() string { return "status" }

func (command) Run(ctx *cli.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return err
	}
	report, err := r.Status()
	if err != nil {
		return err
	}

	fmt.Printf("On branch %s\n", report.Branch)
	if report.Merging {
		fmt.Println("Merge in progress; resolve conflicts and commit")
	}
	printSection("Staged", report.Staged)
	printSection("Modified", report.Modified)
	printSection("Untracked", report.Untracked)
	if len(report.Staged)+len(report.Modified)+len(report.Untracked) == 0 {
		fmt.Println("nothing to commit, working tree clean")
	}
	return nil
}

func printSection(title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, p := range paths {
		fmt.Printf("\t%s\n", p)
	}
}

func init() {
	cli.Register(command{})
}
