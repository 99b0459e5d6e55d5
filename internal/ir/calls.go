package ir

import (
	"strconv"
	"strings"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/quad"
	"github.com/compiscript/cscc/internal/symbols"
)

// genFunctionDecl lowers a function (or method) body: begin marker, one
// arg quad per parameter (so the code generator can bind incoming argument
// registers/stack slots to names), the body, end marker. It replays the
// single scope analyzeFunctionDecl opened for this body, so parameters and
// locals the analyzer declared are the very symbols genExpr/genStatement
// resolve.
func (g *Generator) genFunctionDecl(f *ast.FunctionDecl) {
	sym, _ := g.Table.Lookup(f.Name.Value)
	label := sym.Label + f.Name.Value

	g.emit(quad.Begin, label, "", "")

	savedRegistry := g.registry
	g.registry = nil

	exit := g.enterScope()
	for _, p := range sym.ArgList {
		g.emit(quad.Arg, p.Name, "", "")
		g.trackLocal(p.Name)
	}
	for _, stmt := range f.Body.Statements {
		g.genStatement(stmt)
		g.flushStatement()
	}
	exit()

	g.registry = savedRegistry

	g.emit(quad.End, label, "", "")
	g.flushStatement()
}

// trackLocal records name's operand form in the registry if it resolves to
// a scope-qualified ($s-class) local rather than a global data-section
// cell: the registry only needs to protect values a call could clobber in
// registers, and a global lives in memory under its own W/B/S label
// regardless of any call.
func (g *Generator) trackLocal(name string) {
	_, operand := g.operand(name)
	if !strings.Contains(operand, "_") {
		return
	}
	for _, existing := range g.registry {
		if existing == operand {
			return
		}
	}
	g.registry = append(g.registry, operand)
}

// genClassDecl lowers a class body by replaying the single scope
// analyzeClassDecl opened for it and emitting each method's function body
// in turn; properties themselves consume no code, only layout (already
// recorded on their Symbol by the analyzer).
func (g *Generator) genClassDecl(c *ast.ClassDecl) {
	prevClass := g.currentClass
	g.currentClass = c.Name.Value

	exit := g.enterScope()
	for _, m := range c.Methods {
		g.genFunctionDecl(m)
	}
	exit()

	g.currentClass = prevClass
}

// genCall lowers a call suffix: push the live local registry, push each
// argument (plus the receiver for a method call), emit call, then restore
// the registry in reverse.
func (g *Generator) genCall(e *ast.CallExpression) string {
	var label string
	var selfOperand string
	isMethod := false

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		sym, _ := g.Table.Lookup(callee.Value)
		label = sym.Label + callee.Value
	case *ast.PropertyExpression:
		isMethod = true
		objSym := g.exprSymbol(callee.Object)
		selfOperand = g.genExpr(callee.Object)
		methodSym, owner := g.methodOwner(objSym.ClassName, callee.Property)
		label = methodSym.Label + callee.Property
		_ = owner
	}

	g.pushRegistry()

	if isMethod {
		g.emit(quad.Param, selfOperand, "", "")
	}
	for _, arg := range e.Arguments {
		val := g.genExpr(arg)
		g.emit(quad.Param, val, "", "")
	}
	g.emit(quad.Call, label, "", "")

	g.popRegistry()

	t := g.newTemp()
	g.emit(quad.Assign, quad.ReturnSlot, "", t)
	return t
}

// pushRegistry emits a push for every local currently live at this call
// site, in declaration order, so the callee can freely reuse temporary
// registers.
func (g *Generator) pushRegistry() {
	for _, name := range g.registry {
		g.emit(quad.Push, name, "", "")
	}
}

// popRegistry emits the matching pops in reverse order, restoring every
// local pushRegistry saved.
func (g *Generator) popRegistry() {
	for i := len(g.registry) - 1; i >= 0; i-- {
		g.emit(quad.Pop, g.registry[i], "", "")
	}
}

// methodOwner resolves method on className (or its nearest ancestor that
// declares it) and returns its Symbol plus the declaring class's name.
func (g *Generator) methodOwner(className, method string) (symbols.Symbol, string) {
	for className != "" {
		if sym, ok := g.Table.GetProperty(className, method); ok {
			return sym, className
		}
		info, ok := g.Classes[className]
		if !ok {
			break
		}
		className = info.Parent
	}
	return symbols.Symbol{}, ""
}

// genNew lowers "new C(args...)": allocate the object's storage, then call
// its constructor with the fresh address as the receiver.
func (g *Generator) genNew(e *ast.NewExpression) string {
	info, ok := g.Classes[e.ClassName]
	size := 0
	if ok {
		size = info.Size
	}
	base := g.newStorageName()
	g.emit(quad.Alloc, strconv.Itoa(size), "", base)

	if ok && info.HasCtor {
		ctorSym, owner := g.methodOwner(e.ClassName, "constructor")
		label := ctorSym.Label + "constructor"
		if owner == "" {
			label = "L0_" + e.ClassName + "_constructor"
		}

		g.pushRegistry()
		g.emit(quad.Param, base, "", "")
		for _, arg := range e.Arguments {
			val := g.genExpr(arg)
			g.emit(quad.Param, val, "", "")
		}
		g.emit(quad.Call, label, "", "")
		g.popRegistry()
	}

	return base
}
