package ir

import (
	"fmt"
	"strconv"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/quad"
	"github.com/compiscript/cscc/internal/symbols"
)

// newStorageName allocates the next S-prefixed object/array storage name.
// Kept as a Generator-scoped counter (not a package global) so two
// Generator runs in the same process — e.g. compiling two programs back to
// back — don't leak numbering between them: re-running the same source
// must produce a byte-identical quadruple stream.
func (g *Generator) newStorageName() string {
	n := fmt.Sprintf("S%d", g.storageCount)
	g.storageCount++
	return n
}

// genExpr lowers expr and returns the operand name holding its value.
func (g *Generator) genExpr(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Token.Literal
	case *ast.StringLiteral:
		return strconv.Quote(e.Value)
	case *ast.BoolLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.NilLiteral:
		return "0"
	case *ast.ThisExpression:
		_, name := g.operand("this")
		return name
	case *ast.Identifier:
		_, name := g.operand(e.Value)
		return name
	case *ast.ArrayLiteral:
		return g.genArrayLiteral(e)
	case *ast.UnaryExpression:
		return g.genUnary(e)
	case *ast.BinaryExpression:
		return g.genBinary(e)
	case *ast.TernaryExpression:
		return g.genTernary(e)
	case *ast.CallExpression:
		return g.genCall(e)
	case *ast.IndexExpression:
		addr, stillArray := g.genIndexAddr(e)
		if stillArray {
			return addr
		}
		return quad.ScratchAddrDeref
	case *ast.PropertyExpression:
		return g.genPropertyLoad(e)
	case *ast.NewExpression:
		return g.genNew(e)
	default:
		return ""
	}
}

func (g *Generator) genUnary(e *ast.UnaryExpression) string {
	a := g.genExpr(e.Right)
	t := g.newTemp()
	switch e.Operator {
	case "!":
		g.emit(quad.Not, a, "", t)
	case "-":
		g.emit(quad.Sub, "0", a, t)
	}
	return t
}

func (g *Generator) genBinary(e *ast.BinaryExpression) string {
	leftSym := g.exprSymbol(e.Left)

	if e.Operator == "==" || e.Operator == "!=" {
		if leftSym.DataType == symbols.String {
			a1 := g.genExpr(e.Left)
			a2 := g.genExpr(e.Right)
			t := g.newTemp()
			if e.Operator == "==" {
				g.emit(quad.Streql, a1, a2, t)
			} else {
				g.emit(quad.Strneq, a1, a2, t)
			}
			return t
		}
	}

	if e.Operator == "+" && leftSym.DataType == symbols.String {
		a1 := g.genExpr(e.Left)
		a2 := g.genExpr(e.Right)
		rightSym := g.exprSymbol(e.Right)
		if rightSym.DataType != symbols.String {
			t := g.newTemp()
			g.emit(quad.ToStr, a2, strconv.Itoa(rightSym.Size), t)
			a2 = t
		}
		t := g.newTemp()
		g.emit(quad.Concat, a1, a2, t)
		return t
	}

	a1 := g.genExpr(e.Left)
	a2 := g.genExpr(e.Right)
	t := g.newTemp()
	g.emit(opFor(e.Operator), a1, a2, t)
	return t
}

func opFor(operator string) quad.Op {
	switch operator {
	case "+":
		return quad.Add
	case "-":
		return quad.Sub
	case "*":
		return quad.Mul
	case "/":
		return quad.Div
	case "<":
		return quad.Lt
	case ">":
		return quad.Gt
	case "<=":
		return quad.Le
	case ">=":
		return quad.Ge
	case "==":
		return quad.Eq
	case "!=":
		return quad.Neq
	case "&&":
		return quad.And
	case "||":
		return quad.Or
	default:
		return quad.Assign
	}
}

// genTernary lowers "cond ? a : b": allocate a result temp and two labels,
// evaluate the chosen branch into the temp along a standard
// if/goto/tag conditional-assign sequence.
func (g *Generator) genTernary(e *ast.TernaryExpression) string {
	cond := g.genExpr(e.Condition)
	result := g.newTemp()
	lTrue := g.newLabel()
	lEnd := g.newLabel()

	g.emit(quad.If, cond, lTrue, "")
	altVal := g.genExpr(e.Alternative)
	g.emit(quad.Assign, altVal, "", result)
	g.emit(quad.Goto, lEnd, "", "")
	g.emit(quad.Tag, lTrue, "", "")
	consVal := g.genExpr(e.Consequence)
	g.emit(quad.Assign, consVal, "", result)
	g.emit(quad.Tag, lEnd, "", "")
	return result
}

// genArrayLiteral allocates storage for the array and stores each element
// in turn, returning the base address.
func (g *Generator) genArrayLiteral(e *ast.ArrayLiteral) string {
	elemSize := 4
	if len(e.Elements) > 0 {
		elemSize = g.exprSymbol(e.Elements[0]).Size
		if elemSize == 0 {
			elemSize = 4
		}
	}
	totalSize := elemSize * len(e.Elements)
	base := g.newStorageName()
	g.emit(quad.Alloc, strconv.Itoa(totalSize), "", base)

	for i, el := range e.Elements {
		val := g.genExpr(el)
		offset := i * elemSize
		g.emit(quad.Add, base, strconv.Itoa(offset), quad.ScratchAddr)
		g.emit(quad.Assign, val, "", quad.ScratchAddrDeref)
	}
	return base
}

// genIndexAddr lowers one "[e]" suffix: materialize the index,
// bounds-check it against the array's declared element count,
// scale by the remaining element size, and add to the base address into
// the scratch address register. It returns the resulting address operand
// and whether further dimensions remain (in which case the address itself,
// not its dereference, is the suffix chain's running value).
func (g *Generator) genIndexAddr(e *ast.IndexExpression) (string, bool) {
	base := g.genExpr(e.Left)
	leftSym := g.exprSymbol(e.Left)

	elemSize := 4
	if leftSym.Dimensions > 1 {
		elemSize = leftSym.Size
	} else {
		elemSize = elementSize(leftSym)
	}
	count := 0
	if elemSize > 0 {
		count = leftSym.Size / elemSize
	}

	idx := g.genExpr(e.Index)
	t0 := g.newTemp()
	g.emit(quad.Assign, idx, "", t0)
	g.emit(quad.Ge, t0, strconv.Itoa(count), quad.ErrSlot)
	g.emit(quad.Iferr, quad.BadIndexLabel, "", "")
	g.emit(quad.Mul, t0, strconv.Itoa(elemSize), t0)
	g.emit(quad.Add, base, t0, quad.ScratchAddr)

	return quad.ScratchAddr, leftSym.Dimensions-1 > 0
}

func elementSize(arraySym symbols.Symbol) int {
	switch arraySym.DataType {
	case symbols.Boolean, symbols.Nil:
		return 1
	case symbols.Object:
		return 4
	default:
		return 4
	}
}

// exprSymbol re-derives a representative Symbol for expr's static type,
// used by lowering rules that branch on data type (string + vs integer +,
// element size for array literals). It mirrors the analyzer's typeOf
// without re-emitting diagnostics, since the tree is already validated.
func (g *Generator) exprSymbol(expr ast.Expression) symbols.Symbol {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return symbols.Symbol{DataType: symbols.Integer, Size: 4}
	case *ast.StringLiteral:
		return symbols.Symbol{DataType: symbols.String, Size: 4}
	case *ast.BoolLiteral:
		return symbols.Symbol{DataType: symbols.Boolean, Size: 1}
	case *ast.NilLiteral:
		return symbols.Symbol{DataType: symbols.Nil, Size: 1}
	case *ast.ThisExpression:
		sym, _ := g.Table.Lookup("this")
		return sym
	case *ast.Identifier:
		sym, _ := g.Table.Lookup(e.Value)
		return sym
	case *ast.ArrayLiteral:
		if len(e.Elements) == 0 {
			return symbols.Symbol{Dimensions: 1}
		}
		elem := g.exprSymbol(e.Elements[0])
		elem.Dimensions++
		return elem
	case *ast.UnaryExpression:
		return g.exprSymbol(e.Right)
	case *ast.BinaryExpression:
		switch e.Operator {
		case "<", ">", "<=", ">=", "==", "!=", "&&", "||":
			return symbols.Symbol{DataType: symbols.Boolean, Size: 1}
		default:
			return g.exprSymbol(e.Left)
		}
	case *ast.TernaryExpression:
		return g.exprSymbol(e.Consequence)
	case *ast.IndexExpression:
		sym := g.exprSymbol(e.Left)
		if sym.Dimensions > 0 {
			sym.Dimensions--
		}
		return sym
	case *ast.PropertyExpression:
		obj := g.exprSymbol(e.Object)
		prop, _ := g.lookupPropertyUpChain(obj.ClassName, e.Property)
		return prop
	case *ast.CallExpression:
		switch callee := e.Callee.(type) {
		case *ast.Identifier:
			sym, _ := g.Table.Lookup(callee.Value)
			return sym
		case *ast.PropertyExpression:
			obj := g.exprSymbol(callee.Object)
			sym, _ := g.lookupPropertyUpChain(obj.ClassName, callee.Property)
			return sym
		}
	case *ast.NewExpression:
		if info, ok := g.Classes[e.ClassName]; ok {
			return symbols.Symbol{DataType: symbols.Object, ClassName: e.ClassName, Size: info.Size}
		}
	}
	return symbols.Symbol{}
}

// lookupPropertyUpChain mirrors semantic.Analyzer's method of the same
// name: resolve a member by walking the superclass chain.
func (g *Generator) lookupPropertyUpChain(className, name string) (symbols.Symbol, bool) {
	for className != "" {
		if sym, ok := g.Table.GetProperty(className, name); ok {
			return sym, true
		}
		info, ok := g.Classes[className]
		if !ok {
			return symbols.Symbol{}, false
		}
		className = info.Parent
	}
	return symbols.Symbol{}, false
}
