package ir

import (
	"strconv"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/quad"
	"github.com/compiscript/cscc/internal/symbols"
)

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		g.genLet(s.Name.Value, s.Value)
	case *ast.ConstStatement:
		g.genLet(s.Name.Value, s.Value)
	case *ast.FunctionDecl:
		g.genFunctionDecl(s)
	case *ast.ClassDecl:
		g.genClassDecl(s)
	case *ast.BlockStatement:
		exit := g.enterScope()
		for _, inner := range s.Statements {
			g.genStatement(inner)
			g.flushStatement()
		}
		exit()
	case *ast.ExpressionStatement:
		g.genExpr(s.Expression)
	case *ast.AssignStatement:
		_, target := g.operand(s.Name.Value)
		val := g.genExpr(s.Value)
		g.emit(quad.Assign, val, "", target)
	case *ast.PropertyAssignStatement:
		g.genPropertyStore(s.Object, s.Property, s.Value)
	case *ast.IndexAssignStatement:
		idx := s.Left.(*ast.IndexExpression)
		g.genIndexAddr(idx)
		val := g.genExpr(s.Value)
		g.emit(quad.Assign, val, "", quad.ScratchAddrDeref)
	case *ast.IfStatement:
		g.genIf(s)
	case *ast.WhileStatement:
		g.genWhile(s)
	case *ast.DoWhileStatement:
		g.genDoWhile(s)
	case *ast.ForStatement:
		g.genFor(s)
	case *ast.ForeachStatement:
		g.genForeach(s)
	case *ast.BreakStatement:
		g.emit(quad.Goto, g.currentLoop().end, "", "")
	case *ast.ContinueStatement:
		g.emit(quad.Goto, g.currentLoop().begin, "", "")
	case *ast.ReturnStatement:
		g.genReturn(s)
	case *ast.PrintStatement:
		g.genPrint(s)
	case *ast.SwitchStatement:
		g.genSwitch(s)
	case *ast.TryCatchStatement:
		g.genTryCatch(s)
	}
}

// genLet lowers "x = e": a plain assignment into the variable's
// label-qualified name. A declaration with no initializer is
// zero-initialized so the variable still gets a data-section cell.
func (g *Generator) genLet(name string, value ast.Expression) {
	sym, target := g.operand(name)
	g.trackLocal(name)
	if value == nil {
		g.emit(quad.Assign, zeroValue(sym), "", target)
		return
	}
	if arr, ok := value.(*ast.ArrayLiteral); ok {
		addr := g.genArrayLiteral(arr)
		g.emit(quad.Assign, addr, "", target)
		return
	}
	val := g.genExpr(value)
	g.emit(quad.Assign, val, "", target)
}

func zeroValue(sym symbols.Symbol) string {
	switch sym.DataType {
	case symbols.Boolean, symbols.Nil:
		return "false"
	case symbols.String:
		return "\"\""
	default:
		return "0"
	}
}

func (g *Generator) genPropertyStore(object ast.Expression, property string, value ast.Expression) {
	objAddr := g.genExpr(object)
	objSym := g.exprSymbol(object)
	prop, _ := g.lookupPropertyUpChain(objSym.ClassName, property)
	g.emit(quad.Add, objAddr, strconv.Itoa(prop.Offset), quad.ScratchAddr)
	val := g.genExpr(value)
	g.emit(quad.Assign, val, "", quad.ScratchAddrDeref)
}

func (g *Generator) genPropertyLoad(e *ast.PropertyExpression) string {
	objAddr := g.genExpr(e.Object)
	objSym := g.exprSymbol(e.Object)
	prop, _ := g.lookupPropertyUpChain(objSym.ClassName, e.Property)
	g.emit(quad.Add, objAddr, strconv.Itoa(prop.Offset), quad.ScratchAddr)
	return quad.ScratchAddrDeref
}

// genIf lowers an if/else: evaluate c, branch to Ltrue on true, otherwise
// jump to Lfalse. The then arm is emitted under Ltrue and the else arm (if
// any) under Lfalse; no jump separates them, so the then arm falls through
// into the else arm.
func (g *Generator) genIf(s *ast.IfStatement) {
	c := g.genExpr(s.Condition)
	lTrue := g.newLabel()
	lFalse := g.newLabel()
	g.emit(quad.If, c, lTrue, "")
	g.emit(quad.Goto, lFalse, "", "")
	g.emit(quad.Tag, lTrue, "", "")
	g.genStatement(s.Consequence)
	if s.Alternative != nil {
		g.emit(quad.Tag, lFalse, "", "")
		g.genStatement(s.Alternative)
	} else {
		g.emit(quad.Tag, lFalse, "", "")
	}
}

func (g *Generator) genWhile(s *ast.WhileStatement) {
	lBegin := g.newLabel()
	lEnd := g.newLabel()
	g.emit(quad.Tag, lBegin, "", "")
	c := g.genExpr(s.Condition)
	g.emit(quad.Ifnot, c, lEnd, "")
	g.pushLoop(lBegin, lEnd)
	g.genStatement(s.Body)
	g.popLoop()
	g.emit(quad.Goto, lBegin, "", "")
	g.emit(quad.Tag, lEnd, "", "")
}

func (g *Generator) genDoWhile(s *ast.DoWhileStatement) {
	lBegin := g.newLabel()
	lEnd := g.newLabel()
	g.emit(quad.Tag, lBegin, "", "")
	g.pushLoop(lBegin, lEnd)
	g.genStatement(s.Body)
	g.popLoop()
	c := g.genExpr(s.Condition)
	g.emit(quad.If, c, lBegin, "")
	g.emit(quad.Tag, lEnd, "", "")
}

func (g *Generator) genFor(s *ast.ForStatement) {
	exit := g.enterScope()
	defer exit()

	if s.Init != nil {
		g.genStatement(s.Init)
	}
	lBegin := g.newLabel()
	lEnd := g.newLabel()
	g.emit(quad.Tag, lBegin, "", "")
	if s.Condition != nil {
		c := g.genExpr(s.Condition)
		g.emit(quad.Ifnot, c, lEnd, "")
	}
	g.pushLoop(lBegin, lEnd)
	g.genStatement(s.Body)
	g.popLoop()
	if s.Step != nil {
		g.genStatement(s.Step)
	}
	g.emit(quad.Goto, lBegin, "", "")
	g.emit(quad.Tag, lEnd, "", "")
}

// genForeach lowers a foreach loop: walk a cursor through the array's
// storage, assigning each element (or its address, if still an array) to
// the loop variable.
func (g *Generator) genForeach(s *ast.ForeachStatement) {
	arr := g.genExpr(s.Iterable)
	arrSym := g.exprSymbol(s.Iterable)
	elemSize := elementSize(symbols.Symbol{DataType: arrSym.DataType})
	if arrSym.Dimensions > 1 {
		elemSize = 4
	}

	g.emit(quad.Assign, arr, "", quad.ScratchAddr)
	lBegin := g.newLabel()
	lEnd := g.newLabel()
	endAddr := g.newTemp()
	g.emit(quad.Add, arr, strconv.Itoa(arrSym.Size), endAddr)

	exit := g.enterScope()
	defer exit()

	g.emit(quad.Tag, lBegin, "", "")
	cmp := g.newTemp()
	g.emit(quad.Ge, quad.ScratchAddr, endAddr, cmp)
	g.emit(quad.If, cmp, lEnd, "")

	_, loopVar := g.operand(s.Variable.Value)
	g.trackLocal(s.Variable.Value)
	if arrSym.Dimensions > 1 {
		g.emit(quad.Assign, quad.ScratchAddr, "", loopVar)
	} else {
		g.emit(quad.Assign, quad.ScratchAddrDeref, "", loopVar)
	}

	g.pushLoop(lBegin, lEnd)
	for _, inner := range s.Body.Statements {
		g.genStatement(inner)
		g.flushStatement()
	}
	g.popLoop()

	g.emit(quad.Add, quad.ScratchAddr, strconv.Itoa(elemSize), quad.ScratchAddr)
	g.emit(quad.Goto, lBegin, "", "")
	g.emit(quad.Tag, lEnd, "", "")
}

func (g *Generator) genReturn(s *ast.ReturnStatement) {
	if s.Value == nil {
		g.emit(quad.Return, "0", "", "")
		return
	}
	val := g.genExpr(s.Value)
	g.emit(quad.Return, val, "", "")
}

// genPrint lowers a print statement: coerce a non-string value with
// to_str, move the result into the print slot, emit print.
func (g *Generator) genPrint(s *ast.PrintStatement) {
	val := g.genExpr(s.Value)
	sym := g.exprSymbol(s.Value)
	if sym.DataType != symbols.String {
		t := g.newTemp()
		g.emit(quad.ToStr, val, strconv.Itoa(sym.Size), t)
		val = t
	}
	g.emit(quad.Assign, val, "", quad.PrintSlot)
	g.emit(quad.Print, "", "", "")
}

// genSwitch lowers a switch statement: stash the condition, compare each
// case in turn, fall through to the default arm.
func (g *Generator) genSwitch(s *ast.SwitchStatement) {
	cond := g.genExpr(s.Condition)
	g.emit(quad.Assign, cond, "", quad.SwitchSlot)
	lEnd := g.newLabel()

	for _, c := range s.Cases {
		if c.IsDefault {
			exit := g.enterScope()
			for _, inner := range c.Body {
				g.genStatement(inner)
				g.flushStatement()
			}
			exit()
			continue
		}
		val := g.genExpr(c.Value)
		g.emit(quad.Eq, quad.SwitchSlot, val, quad.CaseSlot)
		lNext := g.newLabel()
		g.emit(quad.Ifnot, quad.CaseSlot, lNext, "")
		exit := g.enterScope()
		for _, inner := range c.Body {
			g.genStatement(inner)
			g.flushStatement()
		}
		exit()
		g.emit(quad.Goto, lEnd, "", "")
		g.emit(quad.Tag, lNext, "", "")
	}
	g.emit(quad.Tag, lEnd, "", "")
}

// genTryCatch lowers a try/catch statement: open a handler scope around
// the try body, dispatch to the catch body on error.
func (g *Generator) genTryCatch(s *ast.TryCatchStatement) {
	lCatch := g.newLabel()
	g.emit(quad.Assign, lCatch, "", quad.CatchSlot)

	exitTry := g.enterScope()
	for _, inner := range s.Try.Statements {
		g.genStatement(inner)
		g.flushStatement()
	}
	exitTry()

	g.emit(quad.Assign, "0", "", quad.CatchSlot)
	lEnd := g.newLabel()
	g.emit(quad.Goto, lEnd, "", "")
	g.emit(quad.Begin, lCatch, "", "")

	exitCatch := g.enterScope()
	_, caughtName := g.operand(s.CatchVar.Value)
	g.trackLocal(s.CatchVar.Value)
	g.emit(quad.Assign, quad.ErrSlot, "", caughtName)
	for _, inner := range s.Catch.Statements {
		g.genStatement(inner)
		g.flushStatement()
	}
	exitCatch()

	g.emit(quad.End, lCatch, "", "")
	g.emit(quad.Tag, lEnd, "", "")
}
