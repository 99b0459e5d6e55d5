// Package ast defines the concrete syntax tree (CST) node types for
// CompiScript.
//
// Every node carries the token it started at (for diagnostics), a Pos()
// accessor, and a String() for debugging — but there is no Accept(Visitor)
// double dispatch anywhere. Consumers (internal/semantic, internal/ir)
// dispatch with a plain Go type switch over the concrete node types instead.
package ast

import (
	"strings"

	"github.com/compiscript/cscc/internal/token"
)

// Node is the root interface implemented by every CST node.
type Node interface {
	TokenLiteral() string
	Pos() token.Position
	String() string
}

// Statement is implemented by nodes that appear in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by nodes that produce a value.
type Expression interface {
	Node
	expressionNode()
}

// TypeRef names a declared type: a base name plus an array dimension count.
// Dimensions == 0 means a scalar type.
type TypeRef struct {
	Token      token.Token
	Name       string // "integer", "boolean", "string", "nil", or a class name
	Dimensions int
}

func (t *TypeRef) Pos() token.Position { return t.Token.Pos }
func (t *TypeRef) String() string {
	return t.Name + strings.Repeat("[]", t.Dimensions)
}

// Program is the root of every CST: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()          {}
func (i *Identifier) TokenLiteral() string     { return i.Token.Literal }
func (i *Identifier) Pos() token.Position      { return i.Token.Pos }
func (i *Identifier) String() string           { return i.Value }
