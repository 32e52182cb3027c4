// Command songtab flattens score documents into note and harmony tables.
package main

import (
	"os"

	"github.com/roach88/songtab/internal/cli"
)

func main() {
	os.Exit(cli.GetExitCode(cli.NewRootCommand().Execute()))
}
