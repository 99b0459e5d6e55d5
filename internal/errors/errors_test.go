package errors

import (
	"strings"
	"testing"

	"github.com/compiscript/cscc/internal/token"
)

func TestFormatIncludesFileLineAndCaret(t *testing.T) {
	src := "let x = 5;\nlet y = true;\n"
	err := New(NonMatchingTypes, token.Position{Line: 2, Column: 9}, "boolean is not integer", src, "prog.cps")

	out := err.Format(false)
	if !strings.Contains(out, "prog.cps:2:9") {
		t.Errorf("expected header with file:line:col, got %q", out)
	}
	if !strings.Contains(out, "let y = true;") {
		t.Errorf("expected source line echoed, got %q", out)
	}
	if !strings.Contains(out, "boolean is not integer") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestFormatWithoutFileOmitsFilePrefix(t *testing.T) {
	err := New(InvalidType, token.Position{Line: 1, Column: 1}, "bad", "", "")
	out := err.Format(false)
	if strings.Contains(out, "Error in") {
		t.Errorf("expected no file prefix, got %q", out)
	}
	if !strings.Contains(out, "Error at 1:1") {
		t.Errorf("expected positional header, got %q", out)
	}
}

func TestFormatAllSingleErrorHasNoBatchHeader(t *testing.T) {
	err := New(Redefinition, token.Position{Line: 1, Column: 1}, "dup", "", "")
	out := FormatAll([]*CompilerError{err}, false)
	if strings.Contains(out, "Compilation failed with") {
		t.Errorf("single error should not carry the batch header, got %q", out)
	}
}

func TestFormatAllMultipleErrorsAreNumbered(t *testing.T) {
	e1 := New(Redefinition, token.Position{Line: 1, Column: 1}, "dup", "", "")
	e2 := New(InvalidType, token.Position{Line: 2, Column: 1}, "bad type", "", "")
	out := FormatAll([]*CompilerError{e1, e2}, false)

	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected count of 2, got %q", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Errorf("expected numbered markers, got %q", out)
	}
}

func TestFormatAllEmptyIsEmptyString(t *testing.T) {
	if out := FormatAll(nil, false); out != "" {
		t.Errorf("expected empty string for no errors, got %q", out)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = New(UndefinedAccess, token.Position{Line: 1, Column: 1}, "undefined x", "", "")
	if err.Error() == "" {
		t.Errorf("expected non-empty Error() output")
	}
}
