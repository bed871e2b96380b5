// Package main is the entry point for the workwell CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/workwell/cmd"
	"github.com/huangsam/workwell/internal/iocache"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the exit code so deferred cleanup still happens.
func run() int {
	defer iocache.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			fmt.Fprintln(os.Stderr, "⚠️ ", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		return 1
	}
	return 0
}
