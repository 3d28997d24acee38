// Command helipad manages notes in a Helipad account from the shell.
package main

import (
	"os"

	"github.com/padkit/helipad/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
