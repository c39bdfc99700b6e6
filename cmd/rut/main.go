// Command rut is a cut-style text-selection utility with regex delimiters,
// output joiners, complement selection, and configurable line terminators.
package main

import (
	"os"

	"rut/pkg/core"
	"rut/pkg/rut"
)

func main() {
	stdio := core.DefaultStdio()
	os.Exit(rut.Run(stdio, os.Args[1:]))
}
