// Command memtk runs ion exchange membrane equilibrium and transport
// calculations from the command line.
package main

import (
	"os"

	"github.com/roach88/memtk/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
