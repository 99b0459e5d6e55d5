// Package ir implements the second tree-walking pass: given a semantically
// validated CST and the symbol table the analyzer built, it emits a linear
// sequence of quad.Quadruple implementing expression evaluation, control
// flow, the call convention, and object/array addressing.
//
// One struct holds the append-only output plus small pieces of running
// state (temp/label counters and the loop-label stack), with free methods
// that type switch over ast.Node. Scope replay walks the *same*
// symbols.SymbolTable the analyzer built, re-entering and exiting scopes
// in the exact order the analyzer created them.
package ir

import (
	"fmt"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/quad"
	"github.com/compiscript/cscc/internal/semantic"
	"github.com/compiscript/cscc/internal/symbols"
)

type loopLabels struct {
	begin string
	end   string
}

// Generator walks a Program a second time and accumulates quad.Quadruple.
type Generator struct {
	Table   *symbols.SymbolTable
	Classes map[string]*semantic.ClassInfo

	quads []quad.Quadruple

	// optimize is the current statement's quadruple buffer; flushed by
	// flushStatement. It is an unused peephole hook today: flushing simply
	// appends to quads.
	optimize []quad.Quadruple

	tempCount  int
	labelCount int
	storageCount int

	loopStack []loopLabels

	// registry holds the names of local variables live at the current
	// call site, pushed/popped around a call so the callee can reuse
	// temporary registers.
	registry []string

	currentClass string
}

// New creates a Generator sharing table and classes with a completed
// semantic.Analyzer run over the same program.
func New(table *symbols.SymbolTable, classes map[string]*semantic.ClassInfo) *Generator {
	return &Generator{Table: table, Classes: classes}
}

// Quads returns the accumulated quadruple stream.
func (g *Generator) Quads() []quad.Quadruple { return g.quads }

// Generate lowers program into the quadruple stream and returns it.
func (g *Generator) Generate(program *ast.Program) []quad.Quadruple {
	for _, stmt := range program.Statements {
		g.genStatement(stmt)
		g.flushStatement()
	}
	return g.quads
}

// emit appends a quadruple to the current statement's optimize buffer.
func (g *Generator) emit(op quad.Op, arg1, arg2, result string) {
	g.optimize = append(g.optimize, quad.New(op, arg1, arg2, result))
}

// flushStatement moves the optimize buffer into quads and resets
// statement-local state (the temporary counter).
func (g *Generator) flushStatement() {
	g.quads = append(g.quads, g.optimize...)
	g.optimize = nil
	g.tempCount = 0
}

func (g *Generator) newTemp() string {
	t := fmt.Sprintf("t%d", g.tempCount)
	g.tempCount++
	return t
}

func (g *Generator) newLabel() string {
	l := fmt.Sprintf("l%d", g.labelCount)
	g.labelCount++
	return l
}

// label names a symbol for the code generator. Top-level (global-scope)
// symbols need a home in .data, so they're named with the storage-class
// prefix the code generator's data-section scan keys on: "W" for a scalar
// Integer/String cell, "B" for Boolean/Nil, "S" for an Object or array
// (anything backed by `alloc`). Everything declared inside a function or
// class body instead gets the scope-qualified "L{id}_name" prefix, which
// the register allocator recognizes by its underscore as a persistent
// $s-class local.
func (g *Generator) label(sym symbols.Symbol, name string) string {
	isData := sym.Kind == symbols.Variable || sym.Kind == symbols.Constant || sym.Kind == symbols.Property
	if isData && sym.Label == "L0_" {
		return dataPrefix(sym) + name
	}
	if sym.Label != "" {
		return sym.Label + name
	}
	return name
}

func dataPrefix(sym symbols.Symbol) string {
	if sym.Dimensions > 0 || sym.DataType == symbols.Object {
		return "S"
	}
	switch sym.DataType {
	case symbols.Boolean, symbols.Nil:
		return "B"
	default:
		return "W"
	}
}

// operand resolves name through the shared symbol table and forms its
// generator-facing operand name.
func (g *Generator) operand(name string) (symbols.Symbol, string) {
	sym, ok := g.Table.Lookup(name)
	if !ok {
		return symbols.Symbol{}, name
	}
	return sym, g.label(sym, name)
}

// enterScope replays the next scope the analyzer opened at this point in
// the walk, so every symbol declared inside it during analysis —
// parameters, loop variables, locals — stays visible to the generator.
func (g *Generator) enterScope() func() {
	g.Table.EnterExisting()
	return func() { g.Table.Exit() }
}

func (g *Generator) pushLoop(begin, end string) {
	g.loopStack = append(g.loopStack, loopLabels{begin: begin, end: end})
}

func (g *Generator) popLoop() {
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
}

func (g *Generator) currentLoop() loopLabels {
	return g.loopStack[len(g.loopStack)-1]
}
