// Package errors formats compiler diagnostics with source context, a
// line:column header, and a caret pointing at the offending column.
//
// A CompilerError carries message/source/file/position, an Error() that
// defers to Format(false), and a caret built from spaces sized to the
// line-number gutter plus the column. Kind classifies the diagnostic,
// since CompiScript's errors are drawn from a fixed, named vocabulary
// rather than free-form strings.
package errors

import (
	"fmt"
	"strings"

	"github.com/compiscript/cscc/internal/token"
)

// Kind names one of the diagnostic categories the semantic analyzer can
// raise. Every analyzer error belongs to exactly one of these.
type Kind string

const (
	Redefinition         Kind = "Redefinition"
	UndefinedAccess      Kind = "UndefinedAccess"
	NonMatchingTypes     Kind = "NonMatchingTypes"
	InvalidType          Kind = "InvalidType"
	InvalidPropertyAccess Kind = "InvalidPropertyAccess"
	InvalidSuffix        Kind = "InvalidSuffix"
	InvalidIndex         Kind = "InvalidIndex"
	InvalidKeywordUse    Kind = "InvalidKeywordUse"
	InvalidDeclaration   Kind = "InvalidDeclaration"
	ConstantModification Kind = "ConstantModification"
	UnreachableCode      Kind = "UnreachableCode"
	IncompleteCall       Kind = "IncompleteCall"
	MissingReturn        Kind = "MissingReturn"
	NonMatchingArguments Kind = "NonMatchingArguments"
)

// CompilerError is a single diagnostic: its kind, message, and the source
// position it applies to.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New builds a CompilerError. source is the full source text the error was
// found in, used to render the offending line.
func New(kind Kind, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the header, source line, and caret. With color true, the
// caret and message are wrapped in ANSI escapes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Kind))
	} else {
		sb.WriteString(fmt.Sprintf("Error at %d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Kind))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, each preceded by an "[Error i of n]"
// marker when there's more than one.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
