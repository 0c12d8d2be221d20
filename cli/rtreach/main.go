// Package main is the CLI command itself.
package main

import (
	"os"

	"github.com/rtreach/evaltools/cli"
	"github.com/rtreach/evaltools/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
