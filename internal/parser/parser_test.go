package parser

import (
	"testing"

	"github.com/compiscript/cscc/internal/ast"
	"github.com/compiscript/cscc/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, errs)
	}
	return program
}

func TestLetStatementWithTypeAndInitializer(t *testing.T) {
	program := parseProgram(t, `let x: integer = 5;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected *ast.LetStatement, got %T", program.Statements[0])
	}
	if stmt.Name.Value != "x" {
		t.Errorf("expected name x, got %q", stmt.Name.Value)
	}
	if stmt.Type == nil || stmt.Type.Name != "integer" || stmt.Type.Dimensions != 0 {
		t.Fatalf("expected type integer with 0 dimensions, got %+v", stmt.Type)
	}
	lit, ok := stmt.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("expected initializer 5, got %#v", stmt.Value)
	}
}

func TestLetStatementWithoutInitializer(t *testing.T) {
	program := parseProgram(t, `let x: integer;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	if stmt.Value != nil {
		t.Errorf("expected no initializer, got %#v", stmt.Value)
	}
}

func TestLetStatementWithArrayType(t *testing.T) {
	program := parseProgram(t, `let xs: integer[][];`)
	stmt := program.Statements[0].(*ast.LetStatement)
	if stmt.Type.Dimensions != 2 {
		t.Errorf("expected 2 array dimensions, got %d", stmt.Type.Dimensions)
	}
}

func TestConstStatementRequiresInitializer(t *testing.T) {
	p := New(lexer.New(`const x: integer;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for a const without an initializer")
	}
}

func TestFunctionDeclWithParamsAndReturnType(t *testing.T) {
	program := parseProgram(t, `function add(a: integer, b: integer): integer { return a + b; }`)
	fn, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Statements[0])
	}
	if fn.Name.Value != "add" {
		t.Errorf("expected name add, got %q", fn.Name.Value)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name.Value != "a" || fn.Params[1].Name.Value != "b" {
		t.Fatalf("expected params [a, b], got %+v", fn.Params)
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "integer" {
		t.Fatalf("expected return type integer, got %+v", fn.ReturnType)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected a + binary expression, got %#v", ret.Value)
	}
}

func TestFunctionDeclWithNoParamsAndNoReturnType(t *testing.T) {
	program := parseProgram(t, `function noop() { }`)
	fn := program.Statements[0].(*ast.FunctionDecl)
	if len(fn.Params) != 0 {
		t.Errorf("expected 0 params, got %d", len(fn.Params))
	}
	if fn.ReturnType != nil {
		t.Errorf("expected no return type, got %+v", fn.ReturnType)
	}
}

func TestClassDeclWithPropertiesAndMethods(t *testing.T) {
	program := parseProgram(t, `
		class Animal {
			let name: string;
			const legs: integer = 4;
			function speak(): string { return this.name; }
		}
	`)
	cls, ok := program.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", program.Statements[0])
	}
	if cls.Name.Value != "Animal" || cls.Parent != "" {
		t.Errorf("expected class Animal with no parent, got name=%q parent=%q", cls.Name.Value, cls.Parent)
	}
	if len(cls.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(cls.Properties))
	}
	if cls.Properties[0].Name.Value != "name" || cls.Properties[0].ReadOnly {
		t.Errorf("expected property 0 to be mutable 'name', got %+v", cls.Properties[0])
	}
	if cls.Properties[1].Name.Value != "legs" || !cls.Properties[1].ReadOnly {
		t.Errorf("expected property 1 to be readonly 'legs', got %+v", cls.Properties[1])
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name.Value != "speak" {
		t.Fatalf("expected 1 method named speak, got %+v", cls.Methods)
	}
	ret := cls.Methods[0].Body.Statements[0].(*ast.ReturnStatement)
	prop, ok := ret.Value.(*ast.PropertyExpression)
	if !ok || prop.Property != "name" {
		t.Fatalf("expected return this.name, got %#v", ret.Value)
	}
	if _, ok := prop.Object.(*ast.ThisExpression); !ok {
		t.Errorf("expected the property object to be a this expression, got %#v", prop.Object)
	}
}

func TestClassDeclWithParent(t *testing.T) {
	program := parseProgram(t, `class Dog : Animal { }`)
	cls := program.Statements[0].(*ast.ClassDecl)
	if cls.Parent != "Animal" {
		t.Errorf("expected parent Animal, got %q", cls.Parent)
	}
}

func TestIfElseStatement(t *testing.T) {
	program := parseProgram(t, `if (x) { print(1); } else { print(2); }`)
	stmt := program.Statements[0].(*ast.IfStatement)
	if _, ok := stmt.Condition.(*ast.Identifier); !ok {
		t.Errorf("expected condition to be an identifier, got %#v", stmt.Condition)
	}
	if len(stmt.Consequence.Statements) != 1 {
		t.Fatalf("expected 1 statement in consequence, got %d", len(stmt.Consequence.Statements))
	}
	if stmt.Alternative == nil || len(stmt.Alternative.Statements) != 1 {
		t.Fatalf("expected an alternative with 1 statement, got %+v", stmt.Alternative)
	}
}

func TestIfWithoutElseLeavesAlternativeNil(t *testing.T) {
	program := parseProgram(t, `if (x) { print(1); }`)
	stmt := program.Statements[0].(*ast.IfStatement)
	if stmt.Alternative != nil {
		t.Errorf("expected no alternative, got %+v", stmt.Alternative)
	}
}

func TestWhileStatement(t *testing.T) {
	program := parseProgram(t, `while (i < 10) { i = i + 1; }`)
	stmt := program.Statements[0].(*ast.WhileStatement)
	cond, ok := stmt.Condition.(*ast.BinaryExpression)
	if !ok || cond.Operator != "<" {
		t.Fatalf("expected a < condition, got %#v", stmt.Condition)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(stmt.Body.Statements))
	}
	if _, ok := stmt.Body.Statements[0].(*ast.AssignStatement); !ok {
		t.Errorf("expected an assignment in the loop body, got %T", stmt.Body.Statements[0])
	}
}

func TestDoWhileStatement(t *testing.T) {
	program := parseProgram(t, `do { i = i + 1; } while (i < 10);`)
	stmt := program.Statements[0].(*ast.DoWhileStatement)
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(stmt.Body.Statements))
	}
	if _, ok := stmt.Condition.(*ast.BinaryExpression); !ok {
		t.Errorf("expected a binary condition, got %#v", stmt.Condition)
	}
}

func TestClassicForStatement(t *testing.T) {
	program := parseProgram(t, `for (let i = 0; i < 10; i = i + 1) { print(i); }`)
	stmt, ok := program.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", program.Statements[0])
	}
	if _, ok := stmt.Init.(*ast.LetStatement); !ok {
		t.Fatalf("expected init to be a let statement, got %T", stmt.Init)
	}
	if _, ok := stmt.Condition.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected a binary condition, got %#v", stmt.Condition)
	}
	if _, ok := stmt.Step.(*ast.AssignStatement); !ok {
		t.Fatalf("expected step to be an assignment, got %T", stmt.Step)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(stmt.Body.Statements))
	}
}

func TestForStatementWithEmptyClauses(t *testing.T) {
	program := parseProgram(t, `for (;;) { break; }`)
	stmt := program.Statements[0].(*ast.ForStatement)
	if stmt.Init != nil {
		t.Errorf("expected no init clause, got %#v", stmt.Init)
	}
	if stmt.Condition != nil {
		t.Errorf("expected no condition, got %#v", stmt.Condition)
	}
	if stmt.Step != nil {
		t.Errorf("expected no step clause, got %#v", stmt.Step)
	}
}

func TestForeachStatementDisambiguatedFromClassicFor(t *testing.T) {
	program := parseProgram(t, `for (n in xs) { print(n); }`)
	stmt, ok := program.Statements[0].(*ast.ForeachStatement)
	if !ok {
		t.Fatalf("expected *ast.ForeachStatement, got %T", program.Statements[0])
	}
	if stmt.Variable.Value != "n" {
		t.Errorf("expected loop variable n, got %q", stmt.Variable.Value)
	}
	iterable, ok := stmt.Iterable.(*ast.Identifier)
	if !ok || iterable.Value != "xs" {
		t.Fatalf("expected iterable xs, got %#v", stmt.Iterable)
	}
}

func TestForeachDisambiguationDoesNotConsumeClassicFor(t *testing.T) {
	program := parseProgram(t, `for (i = 0; i < 3; i = i + 1) { print(i); }`)
	if _, ok := program.Statements[0].(*ast.ForStatement); !ok {
		t.Fatalf("expected the backtracked parse to still produce a classic for, got %T", program.Statements[0])
	}
}

func TestBreakAndContinueStatements(t *testing.T) {
	program := parseProgram(t, `while (true) { break; continue; }`)
	stmt := program.Statements[0].(*ast.WhileStatement)
	if _, ok := stmt.Body.Statements[0].(*ast.BreakStatement); !ok {
		t.Errorf("expected a break statement, got %T", stmt.Body.Statements[0])
	}
	if _, ok := stmt.Body.Statements[1].(*ast.ContinueStatement); !ok {
		t.Errorf("expected a continue statement, got %T", stmt.Body.Statements[1])
	}
}

func TestReturnStatementWithAndWithoutValue(t *testing.T) {
	program := parseProgram(t, `function f() { return 1; } function g() { return; }`)
	f := program.Statements[0].(*ast.FunctionDecl)
	ret := f.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value == nil {
		t.Error("expected a return value")
	}
	g := program.Statements[1].(*ast.FunctionDecl)
	bareRet := g.Body.Statements[0].(*ast.ReturnStatement)
	if bareRet.Value != nil {
		t.Errorf("expected a bare return, got %#v", bareRet.Value)
	}
}

func TestPrintStatement(t *testing.T) {
	program := parseProgram(t, `print("hi");`)
	stmt := program.Statements[0].(*ast.PrintStatement)
	lit, ok := stmt.Value.(*ast.StringLiteral)
	if !ok || lit.Value != "hi" {
		t.Fatalf("expected string literal hi, got %#v", stmt.Value)
	}
}

func TestSwitchStatementWithDefault(t *testing.T) {
	program := parseProgram(t, `
		switch (x) {
			case 1:
				print(1);
			case 2:
				print(2);
			default:
				print(0);
		}
	`)
	stmt := program.Statements[0].(*ast.SwitchStatement)
	if len(stmt.Cases) != 3 {
		t.Fatalf("expected 3 case clauses, got %d", len(stmt.Cases))
	}
	if stmt.Cases[0].IsDefault || stmt.Cases[1].IsDefault {
		t.Errorf("expected the first two clauses to not be default")
	}
	if !stmt.Cases[2].IsDefault {
		t.Errorf("expected the third clause to be default")
	}
	if len(stmt.Cases[0].Body) != 1 {
		t.Fatalf("expected 1 statement in the first case body, got %d", len(stmt.Cases[0].Body))
	}
}

func TestTryCatchStatement(t *testing.T) {
	program := parseProgram(t, `try { print(1); } catch (e) { print(e); }`)
	stmt := program.Statements[0].(*ast.TryCatchStatement)
	if len(stmt.Try.Statements) != 1 {
		t.Fatalf("expected 1 statement in try block, got %d", len(stmt.Try.Statements))
	}
	if stmt.CatchVar.Value != "e" {
		t.Errorf("expected catch variable e, got %q", stmt.CatchVar.Value)
	}
	if len(stmt.Catch.Statements) != 1 {
		t.Fatalf("expected 1 statement in catch block, got %d", len(stmt.Catch.Statements))
	}
}

func TestSimpleAssignStatement(t *testing.T) {
	program := parseProgram(t, `x = 5;`)
	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignStatement, got %T", program.Statements[0])
	}
	if stmt.Name.Value != "x" {
		t.Errorf("expected target x, got %q", stmt.Name.Value)
	}
}

func TestPropertyAssignStatement(t *testing.T) {
	program := parseProgram(t, `this.name = "rex";`)
	stmt, ok := program.Statements[0].(*ast.PropertyAssignStatement)
	if !ok {
		t.Fatalf("expected *ast.PropertyAssignStatement, got %T", program.Statements[0])
	}
	if _, ok := stmt.Object.(*ast.ThisExpression); !ok {
		t.Errorf("expected the object to be this, got %#v", stmt.Object)
	}
	if stmt.Property != "name" {
		t.Errorf("expected property name, got %q", stmt.Property)
	}
}

func TestIndexAssignStatement(t *testing.T) {
	program := parseProgram(t, `xs[0] = 9;`)
	stmt, ok := program.Statements[0].(*ast.IndexAssignStatement)
	if !ok {
		t.Fatalf("expected *ast.IndexAssignStatement, got %T", program.Statements[0])
	}
	idx, ok := stmt.Left.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("expected Left to be an *ast.IndexExpression, got %T", stmt.Left)
	}
	if ident, ok := idx.Left.(*ast.Identifier); !ok || ident.Value != "xs" {
		t.Errorf("expected the indexed array to be xs, got %#v", idx.Left)
	}
}

func TestInvalidAssignmentTargetIsReported(t *testing.T) {
	p := New(lexer.New(`1 = 2;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for assigning into a non-lvalue expression")
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	program := parseProgram(t, `let x = 1 + 2 * 3;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	add, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || add.Operator != "+" {
		t.Fatalf("expected the outermost operator to be +, got %#v", stmt.Value)
	}
	if _, ok := add.Left.(*ast.IntegerLiteral); !ok {
		t.Errorf("expected the left operand to be a plain literal, got %#v", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpression)
	if !ok || mul.Operator != "*" {
		t.Fatalf("expected the right operand to be a nested *, got %#v", add.Right)
	}
}

func TestComparisonAndLogicalPrecedence(t *testing.T) {
	program := parseProgram(t, `let x = a < b && c > d;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	and, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || and.Operator != "&&" {
		t.Fatalf("expected the outermost operator to be &&, got %#v", stmt.Value)
	}
	if lt, ok := and.Left.(*ast.BinaryExpression); !ok || lt.Operator != "<" {
		t.Errorf("expected the left operand to be a < comparison, got %#v", and.Left)
	}
	if gt, ok := and.Right.(*ast.BinaryExpression); !ok || gt.Operator != ">" {
		t.Errorf("expected the right operand to be a > comparison, got %#v", and.Right)
	}
}

func TestTernaryExpressionIsRightAssociativeOnAlternative(t *testing.T) {
	program := parseProgram(t, `let x = a ? b : c ? d : e;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	outer, ok := stmt.Value.(*ast.TernaryExpression)
	if !ok {
		t.Fatalf("expected a ternary expression, got %#v", stmt.Value)
	}
	if _, ok := outer.Condition.(*ast.Identifier); !ok {
		t.Errorf("expected condition a, got %#v", outer.Condition)
	}
	if _, ok := outer.Alternative.(*ast.TernaryExpression); !ok {
		t.Errorf("expected the alternative to nest another ternary, got %#v", outer.Alternative)
	}
}

func TestUnaryExpressionPrecedesBinary(t *testing.T) {
	program := parseProgram(t, `let x = !a == b;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	eq, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || eq.Operator != "==" {
		t.Fatalf("expected the outermost operator to be ==, got %#v", stmt.Value)
	}
	not, ok := eq.Left.(*ast.UnaryExpression)
	if !ok || not.Operator != "!" {
		t.Fatalf("expected the left operand to be a ! unary, got %#v", eq.Left)
	}
}

func TestGroupedExpressionOverridesPrecedence(t *testing.T) {
	program := parseProgram(t, `let x = (1 + 2) * 3;`)
	stmt := program.Statements[0].(*ast.LetStatement)
	mul, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || mul.Operator != "*" {
		t.Fatalf("expected the outermost operator to be *, got %#v", stmt.Value)
	}
	if add, ok := mul.Left.(*ast.BinaryExpression); !ok || add.Operator != "+" {
		t.Errorf("expected the grouped left operand to be a +, got %#v", mul.Left)
	}
}

func TestArrayLiteral(t *testing.T) {
	program := parseProgram(t, `let xs = [1, 2, 3];`)
	stmt := program.Statements[0].(*ast.LetStatement)
	arr, ok := stmt.Value.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected a 3-element array literal, got %#v", stmt.Value)
	}
}

func TestEmptyArrayLiteral(t *testing.T) {
	program := parseProgram(t, `let xs = [];`)
	stmt := program.Statements[0].(*ast.LetStatement)
	arr := stmt.Value.(*ast.ArrayLiteral)
	if len(arr.Elements) != 0 {
		t.Errorf("expected an empty array literal, got %d elements", len(arr.Elements))
	}
}

func TestNewExpressionWithArguments(t *testing.T) {
	program := parseProgram(t, `let d = new Dog("rex", 3);`)
	stmt := program.Statements[0].(*ast.LetStatement)
	n, ok := stmt.Value.(*ast.NewExpression)
	if !ok || n.ClassName != "Dog" {
		t.Fatalf("expected new Dog(...), got %#v", stmt.Value)
	}
	if len(n.Arguments) != 2 {
		t.Fatalf("expected 2 constructor arguments, got %d", len(n.Arguments))
	}
}

func TestCallIndexPropertyChainParsesLeftToRight(t *testing.T) {
	program := parseProgram(t, `let x = a.b[0](1);`)
	stmt := program.Statements[0].(*ast.LetStatement)
	call, ok := stmt.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected the outermost node to be a call, got %#v", stmt.Value)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 call argument, got %d", len(call.Arguments))
	}
	idx, ok := call.Callee.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("expected the callee to be an index expression, got %#v", call.Callee)
	}
	prop, ok := idx.Left.(*ast.PropertyExpression)
	if !ok || prop.Property != "b" {
		t.Fatalf("expected the indexed expression to be a.b, got %#v", idx.Left)
	}
	if ident, ok := prop.Object.(*ast.Identifier); !ok || ident.Value != "a" {
		t.Errorf("expected the innermost object to be identifier a, got %#v", prop.Object)
	}
}

func TestMissingPrefixParseFunctionIsReported(t *testing.T) {
	p := New(lexer.New(`let x = ;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for a missing expression after '='")
	}
}

func TestUnexpectedTokenInClassBodyIsReported(t *testing.T) {
	p := New(lexer.New(`class C { 5; }`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for a non-declaration token in a class body")
	}
}

func TestUnterminatedParenIsReported(t *testing.T) {
	p := New(lexer.New(`let x = (1 + 2;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for an unterminated grouped expression")
	}
}

func TestEmptyStatementFromBareSemicolonIsSkipped(t *testing.T) {
	program := parseProgram(t, `;;let x = 1;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected bare semicolons to produce no statements, got %d: %+v", len(program.Statements), program.Statements)
	}
}
