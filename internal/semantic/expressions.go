package semantic

import (
	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/errors"
	"github.com/compiscript/cscc/internal/symbols"
	"github.com/compiscript/cscc/internal/token"
)

// typeOf infers expr's Type, recording an error and returning the zero Type
// on failure. Types are checked nominally.
func (a *Analyzer) typeOf(expr ast.Expression) (Type, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return Type{Data: symbols.Integer}, true
	case *ast.StringLiteral:
		return Type{Data: symbols.String}, true
	case *ast.BoolLiteral:
		return Type{Data: symbols.Boolean}, true
	case *ast.NilLiteral:
		return Type{Data: symbols.Nil}, true
	case *ast.ThisExpression:
		if !a.context.has(CtxClass) {
			a.fail(errors.InvalidKeywordUse, e.Pos(), "'this' used outside a class body")
			return Type{}, false
		}
		return Type{Data: symbols.Object, Class: a.currentClass}, true
	case *ast.Identifier:
		sym, ok := a.Table.Lookup(e.Value)
		if !ok {
			a.fail(errors.UndefinedAccess, e.Pos(), "undefined identifier %q", e.Value)
			return Type{}, false
		}
		return symbolType(sym), true
	case *ast.ArrayLiteral:
		return a.typeOfArrayLiteral(e)
	case *ast.UnaryExpression:
		return a.typeOfUnary(e)
	case *ast.BinaryExpression:
		return a.typeOfBinary(e)
	case *ast.TernaryExpression:
		return a.typeOfTernary(e)
	case *ast.CallExpression:
		return a.typeOfCall(e)
	case *ast.IndexExpression:
		return a.typeOfIndex(e)
	case *ast.PropertyExpression:
		return a.typeOfProperty(e)
	case *ast.NewExpression:
		return a.typeOfNew(e)
	default:
		a.fail(errors.InvalidType, expr.Pos(), "unsupported expression")
		return Type{}, false
	}
}

func symbolType(s symbols.Symbol) Type {
	return Type{Data: s.DataType, Class: s.ClassName, Dims: s.Dimensions}
}

func (a *Analyzer) typeOfArrayLiteral(e *ast.ArrayLiteral) (Type, bool) {
	if len(e.Elements) == 0 {
		a.fail(errors.InvalidType, e.Pos(), "empty array literal has no inferable element type")
		return Type{}, false
	}
	first, ok := a.typeOf(e.Elements[0])
	if !ok {
		return Type{}, false
	}
	for _, elem := range e.Elements[1:] {
		t, ok := a.typeOf(elem)
		if !ok {
			return Type{}, false
		}
		if !t.Equal(first) {
			a.fail(errors.NonMatchingTypes, elem.Pos(), "array element type %s does not match %s", t, first)
			return Type{}, false
		}
	}
	return Type{Data: first.Data, Class: first.Class, Dims: first.Dims + 1}, true
}

func (a *Analyzer) typeOfUnary(e *ast.UnaryExpression) (Type, bool) {
	right, ok := a.typeOf(e.Right)
	if !ok {
		return Type{}, false
	}
	switch e.Operator {
	case "!":
		if right.Data != symbols.Boolean || right.Dims > 0 {
			a.fail(errors.InvalidType, e.Pos(), "'!' requires a boolean operand, got %s", right)
			return Type{}, false
		}
		return Type{Data: symbols.Boolean}, true
	case "-":
		if right.Data != symbols.Integer || right.Dims > 0 {
			a.fail(errors.InvalidType, e.Pos(), "unary '-' requires an integer operand, got %s", right)
			return Type{}, false
		}
		return Type{Data: symbols.Integer}, true
	default:
		a.fail(errors.InvalidType, e.Pos(), "unknown unary operator %q", e.Operator)
		return Type{}, false
	}
}

func (a *Analyzer) typeOfBinary(e *ast.BinaryExpression) (Type, bool) {
	left, lok := a.typeOf(e.Left)
	right, rok := a.typeOf(e.Right)
	if !lok || !rok {
		return Type{}, false
	}

	switch e.Operator {
	case "+":
		if left.Data == symbols.String && left.Dims == 0 {
			return Type{Data: symbols.String}, true
		}
		if left.Data == symbols.Integer && right.Data == symbols.Integer && left.Dims == 0 && right.Dims == 0 {
			return Type{Data: symbols.Integer}, true
		}
		a.fail(errors.InvalidType, e.Pos(), "'+' requires two integers or a string left operand, got %s and %s", left, right)
		return Type{}, false
	case "-", "*", "/":
		if left.Data != symbols.Integer || right.Data != symbols.Integer || left.Dims > 0 || right.Dims > 0 {
			a.fail(errors.InvalidType, e.Pos(), "%q requires two integer operands, got %s and %s", e.Operator, left, right)
			return Type{}, false
		}
		return Type{Data: symbols.Integer}, true
	case "<", "<=", ">", ">=":
		if left.Data != symbols.Integer || right.Data != symbols.Integer || left.Dims > 0 || right.Dims > 0 {
			a.fail(errors.InvalidType, e.Pos(), "%q requires two integer operands, got %s and %s", e.Operator, left, right)
			return Type{}, false
		}
		return Type{Data: symbols.Boolean}, true
	case "==", "!=":
		if left.Dims > 0 || right.Dims > 0 || left.Data != right.Data {
			a.fail(errors.NonMatchingTypes, e.Pos(), "cannot compare %s with %s", left, right)
			return Type{}, false
		}
		if left.Data == symbols.Object && left.Class != right.Class {
			a.fail(errors.NonMatchingTypes, e.Pos(), "cannot compare object of class %s with %s", left.Class, right.Class)
			return Type{}, false
		}
		return Type{Data: symbols.Boolean}, true
	case "&&", "||":
		if left.Data != symbols.Boolean || right.Data != symbols.Boolean || left.Dims > 0 || right.Dims > 0 {
			a.fail(errors.InvalidType, e.Pos(), "%q requires two boolean operands, got %s and %s", e.Operator, left, right)
			return Type{}, false
		}
		return Type{Data: symbols.Boolean}, true
	default:
		a.fail(errors.InvalidType, e.Pos(), "unknown binary operator %q", e.Operator)
		return Type{}, false
	}
}

func (a *Analyzer) typeOfTernary(e *ast.TernaryExpression) (Type, bool) {
	cond, ok := a.typeOf(e.Condition)
	if !ok {
		return Type{}, false
	}
	if cond.Data != symbols.Boolean || cond.Dims > 0 {
		a.fail(errors.InvalidType, e.Condition.Pos(), "ternary condition must be boolean, got %s", cond)
		return Type{}, false
	}
	cons, cok := a.typeOf(e.Consequence)
	alt, aok := a.typeOf(e.Alternative)
	if !cok || !aok {
		return Type{}, false
	}
	if !cons.Equal(alt) {
		a.fail(errors.NonMatchingTypes, e.Pos(), "ternary branches have mismatched types %s and %s", cons, alt)
		return Type{}, false
	}
	return cons, true
}

func (a *Analyzer) typeOfIndex(e *ast.IndexExpression) (Type, bool) {
	left, ok := a.typeOf(e.Left)
	if !ok {
		return Type{}, false
	}
	if left.Dims == 0 {
		a.fail(errors.InvalidSuffix, e.Pos(), "cannot index non-array type %s", left)
		return Type{}, false
	}
	idx, ok := a.typeOf(e.Index)
	if !ok {
		return Type{}, false
	}
	if idx.Data != symbols.Integer || idx.Dims > 0 {
		a.fail(errors.InvalidIndex, e.Index.Pos(), "array index must be integer, got %s", idx)
		return Type{}, false
	}
	return Type{Data: left.Data, Class: left.Class, Dims: left.Dims - 1}, true
}

func (a *Analyzer) typeOfProperty(e *ast.PropertyExpression) (Type, bool) {
	obj, ok := a.typeOf(e.Object)
	if !ok {
		return Type{}, false
	}
	if obj.Data != symbols.Object || obj.Dims > 0 {
		a.fail(errors.InvalidSuffix, e.Pos(), "cannot access property %q on non-object type %s", e.Property, obj)
		return Type{}, false
	}
	sym, ok := a.lookupPropertyUpChain(obj.Class, e.Property)
	if !ok {
		a.fail(errors.InvalidPropertyAccess, e.Pos(), "class %s has no member %q", obj.Class, e.Property)
		return Type{}, false
	}
	return symbolType(sym), true
}

// lookupPropertyUpChain resolves a property or method by name starting at
// className and walking the superclass chain.
func (a *Analyzer) lookupPropertyUpChain(className, name string) (symbols.Symbol, bool) {
	for className != "" {
		if sym, ok := a.Table.GetProperty(className, name); ok {
			return sym, true
		}
		info, ok := a.Classes[className]
		if !ok {
			return symbols.Symbol{}, false
		}
		className = info.Parent
	}
	return symbols.Symbol{}, false
}

func (a *Analyzer) typeOfCall(e *ast.CallExpression) (Type, bool) {
	var fnSym symbols.Symbol
	var ok bool

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		fnSym, ok = a.Table.Lookup(callee.Value)
		if !ok || fnSym.Kind != symbols.Function {
			a.fail(errors.UndefinedAccess, callee.Pos(), "call to undefined function %q", callee.Value)
			return Type{}, false
		}
	case *ast.PropertyExpression:
		obj, objOK := a.typeOf(callee.Object)
		if !objOK {
			return Type{}, false
		}
		if obj.Data != symbols.Object {
			a.fail(errors.InvalidSuffix, callee.Pos(), "cannot call method %q on non-object type %s", callee.Property, obj)
			return Type{}, false
		}
		fnSym, ok = a.lookupPropertyUpChain(obj.Class, callee.Property)
		if !ok || fnSym.Kind != symbols.Function {
			a.fail(errors.InvalidPropertyAccess, callee.Pos(), "class %s has no method %q", obj.Class, callee.Property)
			return Type{}, false
		}
	default:
		a.fail(errors.InvalidSuffix, e.Pos(), "expression is not callable")
		return Type{}, false
	}

	if !a.checkArgs(e.Pos(), fnSym.ArgList, e.Arguments) {
		return Type{}, false
	}
	return Type{Data: fnSym.DataType, Class: fnSym.ClassName, Dims: fnSym.Dimensions}, true
}

func (a *Analyzer) typeOfNew(e *ast.NewExpression) (Type, bool) {
	info, ok := a.Classes[e.ClassName]
	if !ok {
		a.fail(errors.UndefinedAccess, e.Pos(), "undefined class %q", e.ClassName)
		return Type{}, false
	}
	if !a.checkArgs(e.Pos(), info.CtorArgs, e.Arguments) {
		return Type{}, false
	}
	return Type{Data: symbols.Object, Class: e.ClassName}, true
}

// checkArgs verifies arity and per-position types against params for a call
// or constructor invocation suffix.
func (a *Analyzer) checkArgs(pos token.Position, params []symbols.Symbol, args []ast.Expression) bool {
	if len(args) != len(params) {
		a.fail(errors.IncompleteCall, pos, "expected %d argument(s), got %d", len(params), len(args))
		return false
	}
	ok := true
	for i, arg := range args {
		t, argOK := a.typeOf(arg)
		if !argOK {
			ok = false
			continue
		}
		want := Type{Data: params[i].DataType, Class: params[i].ClassName, Dims: params[i].Dimensions}
		if !t.Equal(want) {
			a.fail(errors.NonMatchingArguments, arg.Pos(), "argument %d: expected %s, got %s", i+1, want, t)
			ok = false
		}
	}
	return ok
}
