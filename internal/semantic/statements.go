package semantic

import (
	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/errors"
	"github.com/compiscript/cscc/internal/symbols"
	"github.com/compiscript/cscc/internal/token"
)

// analyzeStatement dispatches on the concrete statement type via a plain
// Go type switch, in place of a visitor double dispatch.
func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		a.analyzeLetStatement(s)
	case *ast.ConstStatement:
		a.analyzeConstStatement(s)
	case *ast.FunctionDecl:
		a.analyzeFunctionDecl(s)
	case *ast.ClassDecl:
		a.analyzeClassDecl(s)
	case *ast.BlockStatement:
		exit := a.enterScope()
		a.analyzeBlockReachability(s.Statements)
		exit()
	case *ast.ExpressionStatement:
		a.typeOf(s.Expression)
	case *ast.AssignStatement:
		a.analyzeAssign(s)
	case *ast.PropertyAssignStatement:
		a.analyzePropertyAssign(s)
	case *ast.IndexAssignStatement:
		a.analyzeIndexAssign(s)
	case *ast.IfStatement:
		a.analyzeIf(s)
	case *ast.WhileStatement:
		a.analyzeWhile(s)
	case *ast.DoWhileStatement:
		a.analyzeDoWhile(s)
	case *ast.ForStatement:
		a.analyzeFor(s)
	case *ast.ForeachStatement:
		a.analyzeForeach(s)
	case *ast.BreakStatement:
		a.requireLoopContext(s.Pos())
	case *ast.ContinueStatement:
		a.requireLoopContext(s.Pos())
	case *ast.ReturnStatement:
		a.analyzeReturn(s)
	case *ast.PrintStatement:
		a.typeOf(s.Value)
	case *ast.SwitchStatement:
		a.analyzeSwitch(s)
	case *ast.TryCatchStatement:
		a.analyzeTryCatch(s)
	default:
		a.fail(errors.InvalidDeclaration, stmt.Pos(), "unsupported statement")
	}
}

// requireLoopContext implements the Break/Continue contract: either CtxFor
// or CtxWhile must be open, else InvalidKeywordUse.
func (a *Analyzer) requireLoopContext(pos token.Position) {
	if !a.context.has(CtxFor) && !a.context.has(CtxWhile) {
		a.fail(errors.InvalidKeywordUse, pos, "break/continue used outside a loop")
	}
}

func (a *Analyzer) requireBooleanCondition(cond ast.Expression) {
	t, ok := a.typeOf(cond)
	if !ok {
		return
	}
	if t.Data != symbols.Boolean || t.Dims > 0 {
		a.fail(errors.InvalidType, cond.Pos(), "condition must be boolean, got %s", t)
	}
}

func (a *Analyzer) analyzeAssign(s *ast.AssignStatement) {
	sym, ok := a.Table.Lookup(s.Name.Value)
	if !ok {
		a.fail(errors.UndefinedAccess, s.Pos(), "undefined identifier %q", s.Name.Value)
		return
	}
	if sym.Kind == symbols.Constant {
		a.fail(errors.ConstantModification, s.Pos(), "cannot assign to constant %q", s.Name.Value)
		return
	}
	rhs, ok := a.typeOf(s.Value)
	if !ok {
		return
	}
	if !rhs.Equal(symbolType(sym)) {
		a.fail(errors.NonMatchingTypes, s.Value.Pos(), "cannot assign %s to %q of type %s", rhs, s.Name.Value, symbolType(sym))
	}
}

func (a *Analyzer) analyzePropertyAssign(s *ast.PropertyAssignStatement) {
	obj, ok := a.typeOf(s.Object)
	if !ok {
		return
	}
	if obj.Data != symbols.Object {
		a.fail(errors.InvalidSuffix, s.Pos(), "cannot assign property %q on non-object type %s", s.Property, obj)
		return
	}
	sym, ok := a.lookupPropertyUpChain(obj.Class, s.Property)
	if !ok {
		a.fail(errors.InvalidPropertyAccess, s.Pos(), "class %s has no member %q", obj.Class, s.Property)
		return
	}
	if sym.Kind == symbols.Constant {
		a.fail(errors.ConstantModification, s.Pos(), "cannot assign to constant property %q", s.Property)
		return
	}
	rhs, ok := a.typeOf(s.Value)
	if !ok {
		return
	}
	if !rhs.Equal(symbolType(sym)) {
		a.fail(errors.NonMatchingTypes, s.Value.Pos(), "cannot assign %s to property %q of type %s", rhs, s.Property, symbolType(sym))
	}
}

func (a *Analyzer) analyzeIndexAssign(s *ast.IndexAssignStatement) {
	lhsType, ok := a.typeOf(s.Left)
	if !ok {
		return
	}
	rhs, ok := a.typeOf(s.Value)
	if !ok {
		return
	}
	if !rhs.Equal(lhsType) {
		a.fail(errors.NonMatchingTypes, s.Value.Pos(), "cannot assign %s to array element of type %s", rhs, lhsType)
	}
}

func (a *Analyzer) analyzeIf(s *ast.IfStatement) {
	a.requireBooleanCondition(s.Condition)
	a.analyzeStatement(s.Consequence)
	if s.Alternative != nil {
		a.analyzeStatement(s.Alternative)
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStatement) {
	a.requireBooleanCondition(s.Condition)
	prevCtx := a.context
	a.context |= CtxWhile
	a.analyzeStatement(s.Body)
	a.context = prevCtx
}

func (a *Analyzer) analyzeDoWhile(s *ast.DoWhileStatement) {
	prevCtx := a.context
	a.context |= CtxWhile
	a.analyzeStatement(s.Body)
	a.context = prevCtx
	a.requireBooleanCondition(s.Condition)
}

func (a *Analyzer) analyzeFor(s *ast.ForStatement) {
	exit := a.enterScope()
	if s.Init != nil {
		a.analyzeStatement(s.Init)
	}
	if s.Condition != nil {
		a.requireBooleanCondition(s.Condition)
	}
	prevCtx := a.context
	a.context |= CtxFor
	a.analyzeStatement(s.Body)
	if s.Step != nil {
		a.analyzeStatement(s.Step)
	}
	a.context = prevCtx
	exit()
}

// analyzeForeach implements the "Foreach for n in expr" contract:
// expr must be an array; the loop variable is declared, one dimension
// narrower than expr, in a fresh scope.
func (a *Analyzer) analyzeForeach(s *ast.ForeachStatement) {
	arr, ok := a.typeOf(s.Iterable)
	if !ok {
		return
	}
	if arr.Dims == 0 {
		a.fail(errors.InvalidType, s.Iterable.Pos(), "foreach requires an array, got %s", arr)
		return
	}

	elemSym := symbols.Symbol{
		Name: s.Variable.Value, Kind: symbols.Variable,
		DataType: arr.Data, ClassName: arr.Class, Dimensions: arr.Dims - 1,
	}

	exit := a.enterScope(elemSym)
	prevCtx := a.context
	a.context |= CtxFor
	for _, inner := range s.Body.Statements {
		a.analyzeStatement(inner)
	}
	a.context = prevCtx
	exit()
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStatement) {
	if !a.context.has(CtxFunction) {
		a.fail(errors.InvalidKeywordUse, s.Pos(), "return used outside a function")
		return
	}
	if s.Value == nil {
		if a.currentFunction.Data != symbols.Nil {
			a.fail(errors.NonMatchingTypes, s.Pos(), "function declares return type %s but this return has none", a.currentFunction)
		}
		return
	}
	t, ok := a.typeOf(s.Value)
	if !ok {
		return
	}
	if !t.Equal(a.currentFunction) {
		a.fail(errors.NonMatchingTypes, s.Value.Pos(), "function declares return type %s but this return has type %s", a.currentFunction, t)
	}
}

func (a *Analyzer) analyzeSwitch(s *ast.SwitchStatement) {
	cond, ok := a.typeOf(s.Condition)
	if !ok {
		return
	}
	for _, c := range s.Cases {
		if !c.IsDefault {
			caseType, ok := a.typeOf(c.Value)
			if ok && !caseType.Equal(cond) {
				a.fail(errors.NonMatchingTypes, c.Value.Pos(), "case value type %s does not match switch type %s", caseType, cond)
			}
		}
		exit := a.enterScope()
		for _, inner := range c.Body {
			a.analyzeStatement(inner)
		}
		exit()
	}
}

func (a *Analyzer) analyzeTryCatch(s *ast.TryCatchStatement) {
	exitTry := a.enterScope()
	for _, inner := range s.Try.Statements {
		a.analyzeStatement(inner)
	}
	exitTry()

	caughtSym := symbols.Symbol{Name: s.CatchVar.Value, Kind: symbols.Variable, DataType: symbols.String}
	exitCatch := a.enterScope(caughtSym)
	for _, inner := range s.Catch.Statements {
		a.analyzeStatement(inner)
	}
	exitCatch()
}
