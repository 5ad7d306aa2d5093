// Command timeline plans dated tasks on a packed month timeline.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/timeline/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
