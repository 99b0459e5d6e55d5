// Package semantic implements the first tree-walking pass: it builds the
// nested scope tree, type-checks and scope-checks every construct, and
// annotates class bodies with property layout.
//
// The walk itself is a plain Go type switch over ast.Node, not a
// visitor/Accept double dispatch — CompiScript's CST has no Accept method,
// by design (see the ast package doc comment). A single-descent analyzer
// keeps its running state — current scope, in-progress declarations, a
// running error list — as struct fields rather than free variables.
package semantic

import (
	"fmt"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/errors"
	"github.com/compiscript/cscc/internal/symbols"
	"github.com/compiscript/cscc/internal/token"
)

// Context is a bitset of the constructs currently open around the walk
// cursor: Function, Class, For, While.
type Context uint8

const (
	CtxFunction Context = 1 << iota
	CtxClass
	CtxFor
	CtxWhile
)

func (c Context) has(bit Context) bool { return c&bit != 0 }

// ClassInfo records what the analyzer learns about a class declaration:
// its parent, final instance size, and constructor signature. The IR
// generator and code generator both consult this after analysis completes.
type ClassInfo struct {
	Name        string
	Parent      string
	Size        int
	CtorArgs    []symbols.Symbol
	HasCtor     bool
	MethodOwner map[string]string // method name -> declaring class (for dispatch-by-name up the chain)
}

// Type is the lightweight value the analyzer threads through expression
// checking: a nominal data type plus, for Object, the class name, plus an
// array dimension count.
type Type struct {
	Data symbols.DataType
	Class string
	Dims int
}

func (t Type) Equal(o Type) bool {
	return t.Data == o.Data && t.Class == o.Class && t.Dims == o.Dims
}

func (t Type) String() string {
	name := t.Data.String()
	if t.Data == symbols.Object {
		name = t.Class
	}
	for i := 0; i < t.Dims; i++ {
		name += "[]"
	}
	return name
}

// Analyzer walks a Program and produces a populated SymbolTable plus class
// layout information, or a non-empty list of errors.
type Analyzer struct {
	Table   *symbols.SymbolTable
	Classes map[string]*ClassInfo

	source string
	file   string
	errs   []*errors.CompilerError

	context Context

	// currentFunction is the return type of the function body currently
	// being walked; used by Return statement checks.
	currentFunction     Type
	currentFunctionSet  bool

	// currentClass is the name of the class body currently being walked,
	// and classSize is its running offset accumulator.
	currentClass string
	classSize    int
}

// New creates an Analyzer for a single source file.
func New(source, file string) *Analyzer {
	return &Analyzer{
		Table:   symbols.New(),
		Classes: make(map[string]*ClassInfo),
		source:  source,
		file:    file,
	}
}

// Errors returns every diagnostic collected during Analyze.
func (a *Analyzer) Errors() []*errors.CompilerError { return a.errs }

func (a *Analyzer) fail(kind errors.Kind, pos token.Position, format string, args ...any) {
	a.errs = append(a.errs, errors.New(kind, pos, fmt.Sprintf(format, args...), a.source, a.file))
}

// Analyze walks the program in order, populating Table and Classes. It
// returns the collected errors (empty on success).
func (a *Analyzer) Analyze(program *ast.Program) []*errors.CompilerError {
	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt)
	}
	return a.errs
}

// enterScope opens a fresh child scope and returns a func that restores the
// previous one; callers invoke the returned func when they leave the
// construct.
func (a *Analyzer) enterScope(initial ...symbols.Symbol) func() {
	a.Table.Enter(initial...)
	return func() { a.Table.Exit() }
}
