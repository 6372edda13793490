// Command carbonwise serves and runs the CarbonWise footprint estimator.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rshade/carbonwise/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // set by the linker

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command tree and maps its outcome to an exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "[carbonwise] Error: %v\n", err)
		return 1
	}
	return 0
}
