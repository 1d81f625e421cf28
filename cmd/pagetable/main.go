// Command pagetable browses, searches and selects records served by a
// paginated data API.
package main

import (
	"errors"
	"os"

	"github.com/rshade/pagetable/internal/cli"
	"github.com/rshade/pagetable/pkg/version"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitPagesFailed = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string) int {
	root := cli.NewRootCmd(versionString())
	root.SetArgs(args)
	return exitCode(root.Execute())
}

func versionString() string {
	return version.GetVersion() + " (commit " + version.GetGitCommit() + ", built " + version.GetBuildDate() + ")"
}

// exitCode maps an execution error to an exit code. Partial page failures
// get their own code so scripts can tell them from usage errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrPagesFailed):
		return exitPagesFailed
	default:
		return exitError
	}
}
