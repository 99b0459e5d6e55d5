// Package cmd wires the compiscript CLI: a single cobra.Command that reads
// a ".cps" source file and drives internal/driver through the
// parse/analyze/IR/codegen pipeline.
//
// One command, using cobra's flag-registration-in-init() idiom: the CLI
// takes a single positional file argument and three boolean flags, not a
// verb per pipeline stage.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/compiscript/cscc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	printTables bool
	emitTAC     bool
	emitMIPS    bool
)

var rootCmd = &cobra.Command{
	Use:   "compiscript <source.cps>",
	Short: "CompiScript compiler: semantic analysis, IR generation, MIPS codegen",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&printTables, "print-tables", false, "print the scope tree with per-symbol attributes")
	rootCmd.Flags().BoolVar(&emitTAC, "tac", false, "write tac.ir with the IR, one quadruple per line")
	rootCmd.Flags().BoolVar(&emitMIPS, "mips", false, "write mips.s with the generated MIPS assembly")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	if !strings.HasSuffix(filename, ".cps") {
		return fmt.Errorf("source file %q must end in .cps", filename)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	result, err := driver.Compile(string(content), filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if printTables {
		fmt.Print(driver.PrintTables(result.Table))
	}

	if emitTAC {
		if err := os.WriteFile("tac.ir", []byte(driver.TAC(result.Quads)), 0o644); err != nil {
			return fmt.Errorf("failed to write tac.ir: %w", err)
		}
	}

	if emitMIPS {
		if err := os.WriteFile("mips.s", []byte(result.Assembly), 0o644); err != nil {
			return fmt.Errorf("failed to write mips.s: %w", err)
		}
	}

	return nil
}
