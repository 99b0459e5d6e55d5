// Package driver orchestrates the compiler pipeline: parse the source
// text, run the semantic analyzer over the resulting CST, lower the
// validated CST to quadruples, and lower the quadruples to MIPS assembly.
//
// Lex, parse, check parser errors, run the analyzer, check its errors, only
// then hand off to the next stage. Parser errors are reported as plain
// messages (ParseError); analyzer errors are formatted with
// internal/errors.FormatAll (SemanticError). The driver never proceeds past
// a stage that reported errors.
package driver

import (
	"fmt"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/codegen/mips"
	"github.com/compiscript/cscc/internal/errors"
	"github.com/compiscript/cscc/internal/ir"
	"github.com/compiscript/cscc/internal/lexer"
	"github.com/compiscript/cscc/internal/parser"
	"github.com/compiscript/cscc/internal/quad"
	"github.com/compiscript/cscc/internal/semantic"
	"github.com/compiscript/cscc/internal/symbols"
)

// Result holds every artifact a successful Compile produces, so the caller
// (the CLI, or a test) can pick whichever ones it needs without re-running
// earlier stages.
type Result struct {
	Program *ast.Program
	Table   *symbols.SymbolTable
	Classes map[string]*semantic.ClassInfo
	Quads   []quad.Quadruple
	Assembly string
}

// ParseError wraps the parser's own error list: the parser only guarantees
// in-order enumeration and first-token line numbers, so it reports plain
// strings rather than CompilerError, and the driver surfaces them as-is.
type ParseError struct {
	Messages []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing failed with %d error(s):\n%s", len(e.Messages), joinLines(e.Messages))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// SemanticError wraps the analyzer's collected diagnostics.
type SemanticError struct {
	Errs []*errors.CompilerError
}

func (e *SemanticError) Error() string {
	return errors.FormatAll(e.Errs, false)
}

// Parse lexes and parses source, returning the CST or a *ParseError.
func Parse(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &ParseError{Messages: errs}
	}
	return program, nil
}

// Analyze runs the semantic analyzer over program, returning the populated
// symbol table and class layout map, or a *SemanticError.
func Analyze(program *ast.Program, source, file string) (*symbols.SymbolTable, map[string]*semantic.ClassInfo, error) {
	a := semantic.New(source, file)
	if errs := a.Analyze(program); len(errs) > 0 {
		return nil, nil, &SemanticError{Errs: errs}
	}
	return a.Table, a.Classes, nil
}

// GenerateIR lowers an already-analyzed program to its quadruple stream.
// The caller must pass the same program value Analyze consumed, since the
// generator replays the scope tree Analyze built in lockstep with the walk
// order (the same enter/exit discipline the analyzer used to build it).
func GenerateIR(program *ast.Program, table *symbols.SymbolTable, classes map[string]*semantic.ClassInfo) []quad.Quadruple {
	g := ir.New(table, classes)
	return g.Generate(program)
}

// GenerateAssembly lowers a quadruple stream to MIPS assembly text.
func GenerateAssembly(quads []quad.Quadruple) string {
	return mips.New(quads).Generate()
}

// Compile runs the full pipeline end to end: parse, analyze, lower to IR,
// lower to assembly. file is used only for diagnostic headers.
func Compile(source, file string) (*Result, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}

	table, classes, err := Analyze(program, source, file)
	if err != nil {
		return nil, err
	}

	quads := GenerateIR(program, table, classes)
	asm := GenerateAssembly(quads)

	return &Result{
		Program:  program,
		Table:    table,
		Classes:  classes,
		Quads:    quads,
		Assembly: asm,
	}, nil
}

// TAC renders the quadruple stream in the "-tac" CLI flag's one-line-per-
// quadruple format.
func TAC(quads []quad.Quadruple) string {
	out := ""
	for i, q := range quads {
		if i > 0 {
			out += "\n"
		}
		out += q.String()
	}
	if len(quads) > 0 {
		out += "\n"
	}
	return out
}

