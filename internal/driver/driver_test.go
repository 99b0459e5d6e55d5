package driver

import (
	"strings"
	"testing"
)

func TestCompileEndToEndProducesAssembly(t *testing.T) {
	result, err := Compile(`
		function factorial(n: integer): integer {
			if (n <= 1) { return 1; }
			return n * factorial(n - 1);
		}
		let x = factorial(5);
		print(x);
	`, "factorial.cps")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(result.Quads) == 0 {
		t.Fatalf("expected a non-empty quadruple stream")
	}
	if !strings.Contains(result.Assembly, ".data\n") || !strings.Contains(result.Assembly, ".text\n") {
		t.Errorf("expected assembly output to have both sections, got:\n%s", result.Assembly)
	}
	if !strings.Contains(result.Assembly, "main:\n") {
		t.Errorf("expected a main label in the generated assembly")
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	_, err := Compile(`let x = ;`, "bad.cps")
	if err == nil {
		t.Fatal("expected a parse error for malformed source")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("expected a *ParseError, got %T: %v", err, err)
	}
}

func TestCompileReportsSemanticErrors(t *testing.T) {
	_, err := Compile(`
		let x: integer = 5;
		let x: integer = 6;
	`, "redeclared.cps")
	if err == nil {
		t.Fatal("expected a semantic error for a redeclared variable")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Errorf("expected a *SemanticError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "redeclared.cps") {
		t.Errorf("expected the error message to name the source file, got %q", err.Error())
	}
}

func TestCompileStopsAtSemanticErrorsWithoutReachingCodegen(t *testing.T) {
	result, err := Compile(`let y = z + 1;`, "undef.cps")
	if err == nil {
		t.Fatal("expected an error for an undefined identifier")
	}
	if result != nil {
		t.Errorf("expected no result on failure, got %+v", result)
	}
}

func TestTACRendersOneQuadruplePerLine(t *testing.T) {
	result, err := Compile(`let x = 1 + 2;`, "add.cps")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	tac := TAC(result.Quads)
	lines := strings.Split(strings.TrimRight(tac, "\n"), "\n")
	if len(lines) != len(result.Quads) {
		t.Errorf("expected one TAC line per quadruple, got %d lines for %d quadruples", len(lines), len(result.Quads))
	}
	if !strings.HasSuffix(tac, "\n") {
		t.Errorf("expected TAC output to end with a trailing newline")
	}
}

func TestTACOfEmptyStreamIsEmptyString(t *testing.T) {
	if got := TAC(nil); got != "" {
		t.Errorf("expected an empty quadruple stream to render as the empty string, got %q", got)
	}
}

func TestPrintTablesRendersGlobalScopeAndSymbols(t *testing.T) {
	result, err := Compile(`
		let x: integer = 5;
		function add(a: integer, b: integer): integer {
			return a + b;
		}
	`, "scopes.cps")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	dump := PrintTables(result.Table)
	if !strings.Contains(dump, "scope 0") {
		t.Errorf("expected the global scope to be labeled scope 0, got:\n%s", dump)
	}
	if !strings.Contains(dump, "name=x") {
		t.Errorf("expected x to appear in the global scope dump, got:\n%s", dump)
	}
	if !strings.Contains(dump, "name=add") {
		t.Errorf("expected add to appear in the global scope dump, got:\n%s", dump)
	}
	if !strings.Contains(dump, "args=(a, b)") {
		t.Errorf("expected add's parameter list to be rendered in declaration order, got:\n%s", dump)
	}
}
