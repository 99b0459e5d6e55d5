package semantic

import (
	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/errors"
	"github.com/compiscript/cscc/internal/symbols"
)

// baseSize returns the per-element storage size for a scalar DataType:
// 4 bytes for Integer/String (a string value is a pointer), 1 byte for
// Boolean/Nil, and the class's own size for Object.
func (a *Analyzer) baseSize(t Type) int {
	switch t.Data {
	case symbols.Integer, symbols.String:
		return 4
	case symbols.Boolean, symbols.Nil:
		return 1
	case symbols.Object:
		if info, ok := a.Classes[t.Class]; ok {
			return info.Size
		}
		return 4
	default:
		return 4
	}
}

// sizeOf folds in the array-dimension multiplier. Dimension lengths beyond
// the first aren't known until an initializer supplies them; declarations
// with only a type annotation (no initializer) size as a single pointer
// cell, since an array is stored as a pointer to its backing storage.
func (a *Analyzer) sizeOf(t Type, elementCount int) int {
	if t.Dims == 0 {
		return a.baseSize(t)
	}
	if elementCount == 0 {
		return 4
	}
	return a.baseSize(Type{Data: t.Data, Class: t.Class}) * elementCount
}

// resolveTypeRef maps a parsed TypeRef onto the nominal Type lattice,
// failing InvalidType if it names an unknown class.
func (a *Analyzer) resolveTypeRef(tr *ast.TypeRef) (Type, bool) {
	if tr == nil {
		return Type{}, false
	}
	switch tr.Name {
	case "integer":
		return Type{Data: symbols.Integer, Dims: tr.Dimensions}, true
	case "boolean":
		return Type{Data: symbols.Boolean, Dims: tr.Dimensions}, true
	case "string":
		return Type{Data: symbols.String, Dims: tr.Dimensions}, true
	case "nil":
		return Type{Data: symbols.Nil, Dims: tr.Dimensions}, true
	default:
		if _, ok := a.Classes[tr.Name]; !ok {
			a.fail(errors.InvalidType, tr.Pos(), "unknown type %q", tr.Name)
			return Type{}, false
		}
		return Type{Data: symbols.Object, Class: tr.Name, Dims: tr.Dimensions}, true
	}
}

func (a *Analyzer) analyzeLetStatement(s *ast.LetStatement) {
	a.declareVariable(s.Name, s.Type, s.Value, symbols.Variable, false)
}

func (a *Analyzer) analyzeConstStatement(s *ast.ConstStatement) {
	if s.Value == nil {
		a.fail(errors.InvalidDeclaration, s.Pos(), "const %q requires an initializer", s.Name.Value)
		return
	}
	a.declareVariable(s.Name, s.Type, s.Value, symbols.Constant, true)
}

// declareVariable handles both a plain variable and a constant declaration:
// redefinition check, structural type-equality when both annotation and
// initializer are present, type inference when only the initializer is
// present, and the no-annotation-no-initializer error.
func (a *Analyzer) declareVariable(name *ast.Identifier, typeRef *ast.TypeRef, value ast.Expression, kind symbols.Kind, readOnly bool) {
	if a.Table.IsDeclaredInCurrentScope(name.Value) {
		a.fail(errors.Redefinition, name.Pos(), "%q is already declared in this scope", name.Value)
		return
	}

	var declared Type
	var haveDeclared bool
	if typeRef != nil {
		declared, haveDeclared = a.resolveTypeRef(typeRef)
		if !haveDeclared {
			return
		}
	}

	var valueLiteral string
	var final Type
	switch {
	case typeRef != nil && value != nil:
		inferred, ok := a.typeOf(value)
		if !ok {
			return
		}
		if !inferred.Equal(declared) {
			a.fail(errors.NonMatchingTypes, value.Pos(), "declared type %s does not match initializer type %s", declared, inferred)
			return
		}
		final = declared
		valueLiteral = literalValue(value)
	case typeRef != nil:
		final = declared
	case value != nil:
		inferred, ok := a.typeOf(value)
		if !ok {
			return
		}
		final = inferred
		valueLiteral = literalValue(value)
	default:
		a.fail(errors.InvalidDeclaration, name.Pos(), "%q needs a type annotation or an initializer", name.Value)
		return
	}

	sym := symbols.Symbol{
		Name:       name.Value,
		Kind:       kind,
		DataType:   final.Data,
		ClassName:  final.Class,
		Dimensions: final.Dims,
		Value:      valueLiteral,
		Size:       a.sizeOf(final, arrayElementCount(value)),
	}

	if a.context.has(CtxClass) {
		sym.Offset = a.classSize
		a.classSize += sym.Size
	}

	a.Table.Insert(sym)
}

// literalValue extracts a compile-time textual value for simple literals,
// used for data-section initialization later in the pipeline.
func literalValue(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return v.Token.Literal
	case *ast.StringLiteral:
		return v.Value
	case *ast.BoolLiteral:
		return v.Token.Literal
	case *ast.ArrayLiteral:
		out := ""
		for i, el := range v.Elements {
			if i > 0 {
				out += ";"
			}
			out += literalValue(el)
		}
		return out
	default:
		return ""
	}
}

func arrayElementCount(e ast.Expression) int {
	if arr, ok := e.(*ast.ArrayLiteral); ok {
		return len(arr.Elements)
	}
	return 0
}

// analyzeFunctionDecl implements the "Function declaration" contract:
// redefinition check, parameter registration in the function's own scope,
// reachability/MissingReturn enforcement over the body.
func (a *Analyzer) analyzeFunctionDecl(fn *ast.FunctionDecl) {
	if a.Table.IsDeclaredInCurrentScope(fn.Name.Value) {
		a.fail(errors.Redefinition, fn.Pos(), "function %q is already declared in this scope", fn.Name.Value)
		return
	}

	var retType Type
	if fn.ReturnType != nil {
		var ok bool
		retType, ok = a.resolveTypeRef(fn.ReturnType)
		if !ok {
			return
		}
	} else {
		retType = Type{Data: symbols.Nil}
	}

	argList := make([]symbols.Symbol, 0, len(fn.Params))
	paramSyms := make([]symbols.Symbol, 0, len(fn.Params))
	for _, p := range fn.Params {
		pt, ok := a.resolveTypeRef(p.Type)
		if !ok {
			return
		}
		ps := symbols.Symbol{
			Name: p.Name.Value, Kind: symbols.Argument,
			DataType: pt.Data, ClassName: pt.Class, Dimensions: pt.Dims,
			Size: a.sizeOf(pt, 0),
		}
		argList = append(argList, ps)
		paramSyms = append(paramSyms, ps)
	}

	fnSym := symbols.Symbol{
		Name: fn.Name.Value, Kind: symbols.Function,
		DataType: retType.Data, ClassName: retType.Class, Dimensions: retType.Dims,
		ArgList: argList,
	}
	declScope := a.Table.Current()
	a.Table.Insert(fnSym)

	exit := a.enterScope(paramSyms...)
	if inserted, ok := declScope.Symbols[fn.Name.Value]; ok {
		inserted.Definition = a.Table.Current()
		declScope.Symbols[fn.Name.Value] = inserted
	}

	prevCtx := a.context
	prevFn, prevSet := a.currentFunction, a.currentFunctionSet
	a.context |= CtxFunction
	a.currentFunction = retType
	a.currentFunctionSet = true

	terminated := a.analyzeBlockReachability(fn.Body.Statements)

	if retType.Data != symbols.Nil && !terminated {
		a.fail(errors.MissingReturn, fn.Pos(), "function %q must return a value of type %s on every path", fn.Name.Value, retType)
	}

	a.context = prevCtx
	a.currentFunction, a.currentFunctionSet = prevFn, prevSet
	exit()
}

// analyzeClassDecl implements the "Class declaration" contract: disallows
// nested classes, resolves an optional parent, inserts `this`, accumulates
// class_size across properties, and records the constructor signature.
func (a *Analyzer) analyzeClassDecl(cls *ast.ClassDecl) {
	if a.context.has(CtxClass) {
		a.fail(errors.InvalidDeclaration, cls.Pos(), "class %q may not be declared inside another class", cls.Name.Value)
		return
	}
	if a.Table.IsDeclaredInCurrentScope(cls.Name.Value) {
		a.fail(errors.Redefinition, cls.Pos(), "class %q is already declared in this scope", cls.Name.Value)
		return
	}

	info := &ClassInfo{Name: cls.Name.Value, MethodOwner: make(map[string]string)}
	if cls.Parent != "" {
		parent, ok := a.Classes[cls.Parent]
		if !ok {
			a.fail(errors.UndefinedAccess, cls.Pos(), "unknown parent class %q", cls.Parent)
			return
		}
		info.Parent = cls.Parent
		info.CtorArgs = append([]symbols.Symbol(nil), parent.CtorArgs...)
		for name, owner := range parent.MethodOwner {
			info.MethodOwner[name] = owner
		}
	}
	a.Classes[cls.Name.Value] = info

	classSym := symbols.Symbol{Name: cls.Name.Value, Kind: symbols.Class, Parent: cls.Parent}
	a.Table.Insert(classSym)

	exit := a.enterScope()
	classTable := a.Table.Current()
	a.Table.RegisterClassTable(cls.Name.Value, classTable)

	if cls.Parent != "" {
		if parentTable, ok := a.Table.ClassTable(cls.Parent); ok {
			for name, sym := range parentTable.Symbols {
				classTable.Symbols[name] = sym
			}
		}
	}

	a.Table.Insert(symbols.Symbol{Name: "this", Kind: symbols.Variable, DataType: symbols.Object, ClassName: cls.Name.Value})

	prevCtx := a.context
	prevClass := a.currentClass
	prevSize := a.classSize
	a.context |= CtxClass
	a.currentClass = cls.Name.Value
	a.classSize = info.inheritedSize(a)

	for _, p := range cls.Properties {
		a.analyzePropertyDecl(p)
	}
	for _, m := range cls.Methods {
		info.MethodOwner[m.Name.Value] = cls.Name.Value
		a.analyzeFunctionDecl(m)
		if m.Name.Value == "constructor" {
			if sym, ok := a.Table.Lookup("constructor"); ok {
				info.CtorArgs = sym.ArgList
				info.HasCtor = true
			}
		}
	}

	info.Size = a.classSize

	a.context = prevCtx
	a.currentClass = prevClass
	a.classSize = prevSize
	exit()

	classSym.Size = info.Size
	classSym.Definition = classTable
	a.Table.Update(cls.Name.Value, classSym)
}

// inheritedSize returns the byte offset new properties should start at:
// the parent's full size, or 0 for a root class.
func (info *ClassInfo) inheritedSize(a *Analyzer) int {
	if info.Parent == "" {
		return 0
	}
	if parent, ok := a.Classes[info.Parent]; ok {
		return parent.Size
	}
	return 0
}

func (a *Analyzer) analyzePropertyDecl(p *ast.PropertyDecl) {
	kind := symbols.Property
	if p.ReadOnly {
		kind = symbols.Constant
	}
	a.declareVariable(p.Name, p.Type, p.Value, kind, p.ReadOnly)
}
