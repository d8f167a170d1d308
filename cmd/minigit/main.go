// Command minigit is a thin selector over the four core operations:
// init, add, commit, status. Argument parsing and env/stdio plumbing
// live here; the operations themselves know nothing about the CLI.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/aureliengamet/minigit/internal/trace"
)

type options struct{}

func main() {
	trace.ReadEnv()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.AddCommand("init", "Create an empty repository", "", &cmdInit{})
	parser.AddCommand("add", "Stage files", "", &cmdAdd{})
	parser.AddCommand("commit", "Record a tree snapshot", "", &cmdCommit{})
	parser.AddCommand("status", "List untracked files", "", &cmdStatus{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fail(err)
	}
}

// fail prints err to standard error and exits 1. With MINIGIT_DEBUG
// set, it also prints a developer backtrace via pkg/errors' verbose
// formatting.
func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	if trace.General.Enabled() {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	os.Exit(1)
}
