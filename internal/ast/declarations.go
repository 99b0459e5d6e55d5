package ast

import (
	"strings"

	"github.com/compiscript/cscc/internal/token"
)

// Param is a single function or method parameter: a name with its declared
// type.
type Param struct {
	Name *Identifier
	Type *TypeRef
}

func (p *Param) String() string { return p.Name.String() + ": " + p.Type.String() }

// FunctionDecl is a top-level or method function declaration. ReturnType is
// nil when the function declares no return type (an implicit void).
type FunctionDecl struct {
	Token      token.Token
	Name       *Identifier
	Params     []*Param
	ReturnType *TypeRef
	Body       *BlockStatement
}

func (n *FunctionDecl) statementNode()      {}
func (n *FunctionDecl) TokenLiteral() string { return n.Token.Literal }
func (n *FunctionDecl) Pos() token.Position  { return n.Token.Pos }
func (n *FunctionDecl) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.String()
	}
	var sb strings.Builder
	sb.WriteString("function " + n.Name.String() + "(" + strings.Join(parts, ", ") + ")")
	if n.ReturnType != nil {
		sb.WriteString(": " + n.ReturnType.String())
	}
	sb.WriteString(" " + n.Body.String())
	return sb.String()
}

// PropertyDecl is a field declared directly in a class body: "let x: integer;"
// or "const x: integer = 0;".
type PropertyDecl struct {
	Token    token.Token
	Name     *Identifier
	Type     *TypeRef
	Value    Expression // nil if uninitialized
	ReadOnly bool        // true for a const-declared property
}

func (p *PropertyDecl) String() string {
	kw := "let"
	if p.ReadOnly {
		kw = "const"
	}
	s := kw + " " + p.Name.String() + ": " + p.Type.String()
	if p.Value != nil {
		s += " = " + p.Value.String()
	}
	return s + ";"
}

// ClassDecl is "class Name [: Parent] { ... }". Properties and Methods hold
// the class's own members in declaration order; Parent is empty for a class
// with no base.
type ClassDecl struct {
	Token      token.Token
	Name       *Identifier
	Parent     string // "" if the class has no base class
	Properties []*PropertyDecl
	Methods    []*FunctionDecl
}

func (n *ClassDecl) statementNode()      {}
func (n *ClassDecl) TokenLiteral() string { return n.Token.Literal }
func (n *ClassDecl) Pos() token.Position  { return n.Token.Pos }
func (n *ClassDecl) String() string {
	var sb strings.Builder
	sb.WriteString("class " + n.Name.String())
	if n.Parent != "" {
		sb.WriteString(" : " + n.Parent)
	}
	sb.WriteString(" {")
	for _, p := range n.Properties {
		sb.WriteString(p.String())
	}
	for _, m := range n.Methods {
		sb.WriteString(m.String())
	}
	sb.WriteString("}")
	return sb.String()
}
