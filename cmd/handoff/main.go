// Package main is the entry point of the handoff CLI.
//
// Usage:
//
//	handoff [flags] <command>
//
// Commands:
//
//	run        - Run producers and consumers against one shared buffer
package main

import (
	"fmt"
	"os"

	"github.com/teenjuna/handoff/cmd/handoff/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
