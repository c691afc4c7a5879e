// Boardinfo inspects board registries on the host.
//
// It builds a registry from a compiled-in board or a YAML definition file
// and lists, resolves or checks its symbols.
//
// Usage:
//
//	boardinfo [command] [flags]
//
// See 'boardinfo --help' for available commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
