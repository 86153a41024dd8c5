/*
flexpeg is a console utility translating flex lexer specification to Treetop grammar.
Usage is

	flexpeg [flags] [<flexfile>]

<flexfile> is read from standard input if omitted and standard input is not a terminal.
Grammar is written to standard output unless -o is given; an existing output file is kept
unless -f is given, and is only regenerated if it starts with the autogenerated line.
*/
package main

import (
	"os"

	"github.com/ava12/flexpeg/cmd/flexpeg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
