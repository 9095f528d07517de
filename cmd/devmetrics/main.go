// Package main is the entry point for the devmetrics application
package main

import (
	"context"
	"os"

	"github.com/ethpandaops/devmetrics/cmd"
)

func main() {
	// No arguments - run interactive mode
	if len(os.Args) == 1 {
		cmd.RunInteractive(context.Background())
		return
	}

	cmd.Execute()
}
