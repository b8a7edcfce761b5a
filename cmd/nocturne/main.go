// nocturne derives accessible light and dark mode action colour tokens from
// a single brand colour.
package main

import (
	"os"

	"github.com/jmylchreest/nocturne/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
