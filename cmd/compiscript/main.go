// Command compiscript is the CLI front end of the compiler: it reads a
// ".cps" source file, runs it through the full parse/analyze/IR/codegen
// pipeline, and optionally writes "tac.ir" and "mips.s".
package main

import (
	"os"

	"github.com/compiscript/cscc/cmd/compiscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
