// restyle - Clojure source code style tool
// Source: https://github.com/restyle-clj/restyle

package main

import (
	"os"

	"github.com/restyle-clj/restyle/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
